package employee

type EmployeeRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	Department  string `json:"department"`
	Designation string `json:"designation"`

	BaseSalary     *float64 `json:"baseSalary" binding:"required,gte=0"`
	HRAPercent     float64  `json:"hraPercent" binding:"gte=0,lte=100"`
	DAPercent      float64  `json:"daPercent" binding:"gte=0,lte=100"`
	TaxPercent     float64  `json:"taxPercent" binding:"gte=0,lte=100"`
	PFPercent      float64  `json:"pfPercent" binding:"gte=0,lte=100"`
	OtherDeduction float64  `json:"otherDeduction" binding:"gte=0"`
}

type EmployeeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Department  string `json:"department,omitempty"`
	Designation string `json:"designation,omitempty"`

	BaseSalary     float64 `json:"baseSalary"`
	HRAPercent     float64 `json:"hraPercent"`
	DAPercent      float64 `json:"daPercent"`
	TaxPercent     float64 `json:"taxPercent"`
	PFPercent      float64 `json:"pfPercent"`
	OtherDeduction float64 `json:"otherDeduction"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
