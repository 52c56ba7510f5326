package payroll

type RunPayrollRequest struct {
	Month *int `json:"month" binding:"required"`
	Year  *int `json:"year" binding:"required"`
}

type RunResponse struct {
	ID        string `json:"id"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type BreakdownResponse struct {
	Base  float64 `json:"base"`
	HRA   float64 `json:"hra"`
	DA    float64 `json:"da"`
	Tax   float64 `json:"tax"`
	PF    float64 `json:"pf"`
	Other float64 `json:"other"`
}

type ItemResponse struct {
	ID          string `json:"id"`
	RunID       string `json:"runId"`
	EmployeeID  string `json:"employeeId"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Department  string `json:"department,omitempty"`
	Designation string `json:"designation,omitempty"`

	Gross      float64           `json:"gross"`
	Deductions float64           `json:"deductions"`
	Net        float64           `json:"net"`
	Breakdown  BreakdownResponse `json:"breakdown"`
}

type RunDetailResponse struct {
	Run   RunResponse    `json:"run"`
	Items []ItemResponse `json:"items"`
}

type Payslip struct {
	Filename string
	Content  []byte
}
