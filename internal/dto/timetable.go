package dto

// GenerateRequest mirrors the external generation payload shape.
// Struct tags carry both the wire field name and the validator rules
// the service applies with go-playground/validator before anything
// touches the scheduler.
type GenerateRequest struct {
	CollegeSettings CollegeSettingsRequest `json:"college_settings" validate:"required"`
	RoomsConfig     RoomsConfigRequest     `json:"rooms_config" validate:"required"`
	Faculty         []FacultyRequest       `json:"faculty" validate:"required,min=1,dive"`
}

type CollegeSettingsRequest struct {
	DaysActive            []string            `json:"days_active" validate:"required,min=1"`
	TimeSlots             []int               `json:"time_slots" validate:"required,min=1"`
	LunchSlot             int                 `json:"lunch_slot"`
	MaxContinuousLectures int                 `json:"max_continuous_lectures"`
	CustomRules           []CustomRuleRequest `json:"custom_rules"`
}

type CustomRuleRequest struct {
	ID                string `json:"id"`
	ConditionField    string `json:"condition_field"`
	ConditionOperator string `json:"condition_operator"`
	ConditionValue    string `json:"condition_value"`
	ActionType        string `json:"action_type" validate:"omitempty,oneof=RESTRICT_TIME FORCE_ROOM FORCE_PIN"`
	ActionValue       any    `json:"action_value"`
}

type RoomsConfigRequest struct {
	Rooms []RoomRequest `json:"rooms" validate:"required,min=1,dive"`
}

type RoomRequest struct {
	ID       string   `json:"id" validate:"required"`
	Type     string   `json:"type"`
	Capacity int      `json:"capacity" validate:"omitempty,min=0"`
	Tags     []string `json:"tags"`
}

type BlockedSlotRequest struct {
	Day  string `json:"day" validate:"required"`
	Time int    `json:"time"`
}

type WorkloadRequest struct {
	ID               string   `json:"id" validate:"required"`
	Type             string   `json:"type" validate:"required,oneof=Theory Practical Tutorial"`
	Subject          string   `json:"subject" validate:"required"`
	TargetGroups     []string `json:"target_groups" validate:"required,min=1"`
	Hours            int      `json:"hours" validate:"required,min=1"`
	ConsecutiveHours int      `json:"consecutive_hours" validate:"omitempty,min=1"`
	RequiredTags     []string `json:"required_tags"`
}

type FacultyRequest struct {
	ID              string               `json:"id" validate:"required"`
	Name            string               `json:"name" validate:"required"`
	Shift           []int                `json:"shift" validate:"required,min=1"`
	BlockedSlots    []BlockedSlotRequest `json:"blocked_slots"`
	MaxLoadHrs      int                  `json:"max_load_hrs" validate:"min=0"`
	ClassTeacherFor string               `json:"class_teacher_for,omitempty"`
	Workload        []WorkloadRequest    `json:"workload" validate:"dive"`
}

// GenerateResponse is the success shape of POST /api/v1/generate.
type GenerateResponse struct {
	Status       string                `json:"status"`
	Message      string                `json:"message"`
	TotalClasses int                   `json:"total_classes"`
	Schedule     []ScheduleEntryResult `json:"schedule"`
	Cached       bool                  `json:"cached"`
	RunID        string                `json:"run_id"`
}

// ScheduleEntryResult is one record of the output schedule.
type ScheduleEntryResult struct {
	WorkloadID  string   `json:"workload_id"`
	FacultyID   string   `json:"faculty_id"`
	FacultyName string   `json:"faculty_name"`
	Subject     string   `json:"subject"`
	Targets     []string `json:"targets"`
	Type        string   `json:"type"`
	Room        string   `json:"room"`
	Day         string   `json:"day"`
	TimeSlot    int      `json:"time_slot"`
}

// ValidationErrorResponse is the HTTP 400 body on validator rejection.
type ValidationErrorResponse struct {
	Detail ValidationErrorDetail `json:"detail"`
}

type ValidationErrorDetail struct {
	ValidationErrors []string `json:"validation_errors"`
}
