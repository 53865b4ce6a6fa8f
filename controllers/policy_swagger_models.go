package controllers

// CreatePolicyRequestDoc documents the create policy body
type CreatePolicyRequestDoc struct {
	CustomerName      string `json:"customerName" example:"Asha Rao"`
	Dob               string `json:"dob" example:"1990-05-01"`
	Gender            string `json:"gender" example:"Female"`
	Mobile            string `json:"mobile" example:"9876543210"`
	Email             string `json:"email" example:"asha@example.com"`
	Address           string `json:"address" example:"12 MG Road, Bengaluru"`
	PlanType          string `json:"planType" example:"Individual"`
	PanNumber         string `json:"panNumber" example:"ABCDE1234F"`
	MembersCount      int    `json:"membersCount" example:"1"`
	MedicalConditions string `json:"medicalConditions" example:"No"`
	NomineeName       string `json:"nomineeName" example:"Ravi Rao"`
	Premium           string `json:"premium" example:"5000"`
	PolicyStartDate   string `json:"policyStartDate" example:"2025-01-01"`
	AgentID           string `json:"agentId" example:"AGENT-001"`
}

// PolicyResponse represents a stored policy
type PolicyResponse struct {
	ID                uint   `json:"id" example:"1"`
	CustomerName      string `json:"customer_name" example:"Asha Rao"`
	Dob               string `json:"dob" example:"1990-05-01T00:00:00Z"`
	Gender            string `json:"gender" example:"Female"`
	Mobile            string `json:"mobile" example:"9876543210"`
	Email             string `json:"email" example:"asha@example.com"`
	Address           string `json:"address" example:"12 MG Road, Bengaluru"`
	PlanType          string `json:"plan_type" example:"Individual"`
	PanNumber         string `json:"pan_number" example:"ABCDE1234F"`
	MembersCount      int    `json:"members_count" example:"1"`
	MedicalConditions bool   `json:"medical_conditions" example:"false"`
	NomineeName       string `json:"nominee_name" example:"Ravi Rao"`
	Premium           string `json:"premium" example:"5000"`
	PolicyStartDate   string `json:"policy_start_date" example:"2025-01-01T00:00:00Z"`
	AgentID           string `json:"agent_id" example:"AGENT-001"`
}

// PolicyErrorResponse represents a plain error response
type PolicyErrorResponse struct {
	Error string `json:"error" example:"Policy already exists for this PAN number"`
}

// PolicyValidationErrorResponse represents a missing or invalid fields response.
// details is present only for invalid values.
type PolicyValidationErrorResponse struct {
	Error   string            `json:"error" example:"Invalid field values"`
	Fields  []string          `json:"fields" example:"panNumber"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
