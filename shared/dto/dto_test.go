package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medreg/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name       string
		filter     dto.Filter
		wantClause string
		wantArgs   map[string]any
	}{
		{
			name: "equality with table prefix",
			filter: dto.Filter{
				Field:    "status",
				Value:    "BOOKED",
				Operator: dto.FilterOperatorEq,
				Table:    "registrations",
			},
			wantClause: "registrations.status = :status",
			wantArgs:   map[string]any{"status": "BOOKED"},
		},
		{
			name: "equality without table",
			filter: dto.Filter{
				Field:    "queue_no",
				Value:    7,
				Operator: dto.FilterOperatorEq,
			},
			wantClause: "queue_no = :queue_no",
			wantArgs:   map[string]any{"queue_no": 7},
		},
		{
			name: "like is case insensitive",
			filter: dto.Filter{
				Field:    "name",
				Value:    "cardio",
				Operator: dto.FilterOperatorLike,
				Table:    "departments",
			},
			wantClause: "LOWER(departments.name) LIKE LOWER(:name) ",
			wantArgs:   map[string]any{"name": "%cardio%"},
		},
		{
			name: "custom arg name disambiguates range bounds",
			filter: dto.Filter{
				ArgName:  "work_date_from",
				Field:    "work_date",
				Value:    "2026-03-09",
				Operator: dto.FilterOperatorGreaterEq,
				Table:    "schedules",
			},
			wantClause: "schedules.work_date >= :work_date_from",
			wantArgs:   map[string]any{"work_date_from": "2026-03-09"},
		},
		{
			name: "is null",
			filter: dto.Filter{
				Field:    "birth_date",
				Operator: dto.FilterIsNull,
				Table:    "patients",
			},
			wantClause: "patients.birth_date IS NULL",
			wantArgs:   map[string]any{},
		},
		{
			name: "unknown operator yields empty clause",
			filter: dto.Filter{
				Field:    "status",
				Operator: "bogus",
			},
			wantClause: "",
			wantArgs:   map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("empty group", func(t *testing.T) {
		group := dto.FilterGroup{}

		clause, args := group.GetWhereClause()

		assert.Empty(t, clause)
		assert.Empty(t, args)
	})

	t.Run("two filters joined by AND", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{Field: "doctor_id", Value: "doctor-1", Operator: dto.FilterOperatorEq},
				dto.Filter{Field: "status", Value: 1, Operator: dto.FilterOperatorEq},
			},
		}

		clause, args := group.GetWhereClause()

		assert.Equal(t, "(doctor_id = :doctor_id AND status = :status)", clause)
		assert.Equal(t, map[string]any{"doctor_id": "doctor-1", "status": 1}, args)
	})

	t.Run("nested group keeps its own operator", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{Field: "status", Value: 1, Operator: dto.FilterOperatorEq},
				dto.FilterGroup{
					Operator: dto.FilterGroupOperatorOr,
					Filters: []any{
						dto.Filter{Field: "time_slot", Value: "AM", Operator: dto.FilterOperatorEq},
						dto.Filter{ArgName: "slot_pm", Field: "time_slot", Value: "PM", Operator: dto.FilterOperatorEq},
					},
				},
			},
		}

		clause, args := group.GetWhereClause()

		assert.Equal(t, "(status = :status AND (time_slot = :time_slot OR time_slot = :slot_pm))", clause)
		assert.Len(t, args, 3)
	})
}
