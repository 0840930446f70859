package validator_test

import (
	"strings"
	"testing"

	"medreg/shared/validator"
)

type scheduleTestStruct struct {
	DoctorID   string `validate:"required" json:"doctor_id"`
	WorkDate   string `validate:"required,workdate" json:"work_date"`
	TimeSlot   string `validate:"required,timeslot" json:"time_slot"`
	TotalQuota int    `validate:"gte=0,lte=500" json:"total_quota"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *scheduleTestStruct
		expectError bool
	}{
		{
			name: "valid struct",
			data: &scheduleTestStruct{
				DoctorID:   "d-1",
				WorkDate:   "2024-06-01",
				TimeSlot:   "AM",
				TotalQuota: 30,
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &scheduleTestStruct{
				WorkDate:   "2024-06-01",
				TimeSlot:   "AM",
				TotalQuota: 30,
			},
			expectError: true,
		},
		{
			name: "invalid work date",
			data: &scheduleTestStruct{
				DoctorID:   "d-1",
				WorkDate:   "01/06/2024",
				TimeSlot:   "AM",
				TotalQuota: 30,
			},
			expectError: true,
		},
		{
			name: "invalid time slot",
			data: &scheduleTestStruct{
				DoctorID:   "d-1",
				WorkDate:   "2024-06-01",
				TimeSlot:   "EVENING",
				TotalQuota: 30,
			},
			expectError: true,
		},
		{
			name: "quota out of range",
			data: &scheduleTestStruct{
				DoctorID:   "d-1",
				WorkDate:   "2024-06-01",
				TimeSlot:   "PM",
				TotalQuota: 501,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid time slot",
			field:       "PM",
			tag:         "timeslot",
			expectError: false,
		},
		{
			name:        "invalid time slot",
			field:       "pm",
			tag:         "timeslot",
			expectError: true,
		},
		{
			name:        "valid oneof",
			field:       "BOOKED",
			tag:         "oneof=BOOKED CANCELLED FINISHED",
			expectError: false,
		},
		{
			name:        "invalid oneof",
			field:       "PENDING",
			tag:         "oneof=BOOKED CANCELLED FINISHED",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"doctor_id":"d-1","work_date":"2024-06-01","time_slot":"AM","total_quota":30}`,
			expectError: false,
		},
		{
			name:        "invalid time slot",
			jsonBody:    `{"doctor_id":"d-1","work_date":"2024-06-01","time_slot":"NOON","total_quota":30}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"doctor_id":"d-1","work_date":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data scheduleTestStruct
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	data := &scheduleTestStruct{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	if !strings.Contains(errorMsg, "required") || errorMsg == "" {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}
