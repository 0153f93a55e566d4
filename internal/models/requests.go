package models

// OnboardRequest mirrors the intake form. Skills arrives as a JSON-encoded list.
type OnboardRequest struct {
	UUID           string `json:"uuid" form:"uuid" validate:"required,uuid"`
	FullName       string `json:"fullName" form:"fullName"`
	TargetRole     string `json:"targetRole" form:"targetRole"`
	CustomRole     string `json:"customRole" form:"customRole"`
	CollegeYear    string `json:"year" form:"year"`
	CGPA           string `json:"cgpa" form:"cgpa"`
	Experience     string `json:"experience" form:"experience"`
	JobDescription string `json:"jobDescription" form:"jobDescription"`
	Skills         string `json:"skills" form:"skills"`
	ResumePath     string `json:"resume_path" form:"resume_path"`
}

// Day is decoded as a float so any JSON number is accepted; handlers reject
// fractional values.
type ProgressUpdateRequest struct {
	UUID           string   `json:"uuid" validate:"required,uuid"`
	Day            *float64 `json:"day" validate:"required,min=1,max=30"`
	CompletedTasks *[]bool  `json:"completedTasks" validate:"required"`
}

type CurrentDayRequest struct {
	UUID string   `json:"uuid" validate:"required,uuid"`
	Day  *float64 `json:"day" validate:"required,min=1,max=30"`
}

type UploadResponse struct {
	Success   bool   `json:"success"`
	Path      string `json:"path"`
	PublicURL string `json:"publicUrl"`
	Message   string `json:"message"`
}
