package request

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Request struct {
	ID              int64      `json:"id"`
	ReferenceID     string     `json:"referenceId"`
	FullName        string     `json:"fullName"`
	EmployeeID      string     `json:"employeeId"`
	Email           string     `json:"email"`
	JoiningDate     *time.Time `json:"joiningDate,omitempty"`
	Position        string     `json:"position"`
	Department      string     `json:"department"`
	VisitingCountry string     `json:"visitingCountry"`
	Purpose         string     `json:"purpose"`
	LeaveStart      *time.Time `json:"leaveStart,omitempty"`
	LeaveEnd        *time.Time `json:"leaveEnd,omitempty"`
	Status          string     `json:"status"`
	HRNote          string     `json:"hrNote,omitempty"`
	PDFURL          string     `json:"pdfUrl,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type SubmitPayload struct {
	FullName        string `json:"fullName"`
	EmployeeID      string `json:"employeeId"`
	Email           string `json:"email"`
	JoiningDate     string `json:"joiningDate"`
	Position        string `json:"position"`
	Department      string `json:"department"`
	VisitingCountry string `json:"visitingCountry"`
	Purpose         string `json:"purpose"`
	LeaveStart      string `json:"leaveStart"`
	LeaveEnd        string `json:"leaveEnd"`
}

type ListFilter struct {
	Status   string
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

type ListResult struct {
	Requests []Request `json:"requests"`
	Total    int       `json:"total"`
}
