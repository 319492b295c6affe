package salary

type UpsertSalaryRequest struct {
	MonthlyWage   string `json:"monthly_wage" binding:"required,money"`
	EffectiveDate string `json:"effective_date" binding:"required,datetime=2006-01-02"`
}

type SalaryResponse struct {
	ID            string `json:"id"`
	ProfileID     string `json:"profile_id"`
	ProfileName   string `json:"profile_name,omitempty"`
	MonthlyWage   string `json:"monthly_wage"`
	YearlyWage    string `json:"yearly_wage"`
	EffectiveDate string `json:"effective_date"`
}
