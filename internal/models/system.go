package models

// SystemRecord is a catalog entry: a named system with three steward
// contacts. All fields are strings on disk, timestamps included.
type SystemRecord struct {
	SystemID                 string `json:"system_id"`
	SystemName               string `json:"system_name"`
	SystemDescription        string `json:"system_description"`
	BusinessStewardEmail     string `json:"business_steward_email"`
	BusinessStewardFullName  string `json:"business_steward_full_name"`
	SecurityStewardEmail     string `json:"security_steward_email"`
	SecurityStewardFullName  string `json:"security_steward_full_name"`
	TechnicalStewardEmail    string `json:"technical_steward_email"`
	TechnicalStewardFullName string `json:"technical_steward_full_name"`
	Status                   string `json:"status"`
	CreatedAt                string `json:"created_at"`
	UpdatedAt                string `json:"updated_at"`
}

// CreateSystemRequest carries the fields required to create a system.
// Status is optional and defaults to "active".
type CreateSystemRequest struct {
	SystemName               string `json:"system_name" binding:"required"`
	SystemDescription        string `json:"system_description" binding:"required"`
	BusinessStewardEmail     string `json:"business_steward_email" binding:"required,email"`
	BusinessStewardFullName  string `json:"business_steward_full_name" binding:"required"`
	SecurityStewardEmail     string `json:"security_steward_email" binding:"required,email"`
	SecurityStewardFullName  string `json:"security_steward_full_name" binding:"required"`
	TechnicalStewardEmail    string `json:"technical_steward_email" binding:"required,email"`
	TechnicalStewardFullName string `json:"technical_steward_full_name" binding:"required"`
	Status                   string `json:"status"`
}

// UpdateSystemRequest carries an arbitrary subset of mutable fields.
// Nil pointers mean "leave unchanged"; supplied emails are still
// syntax-checked.
type UpdateSystemRequest struct {
	SystemName               *string `json:"system_name" binding:"omitempty"`
	SystemDescription        *string `json:"system_description" binding:"omitempty"`
	BusinessStewardEmail     *string `json:"business_steward_email" binding:"omitempty,email"`
	BusinessStewardFullName  *string `json:"business_steward_full_name" binding:"omitempty"`
	SecurityStewardEmail     *string `json:"security_steward_email" binding:"omitempty,email"`
	SecurityStewardFullName  *string `json:"security_steward_full_name" binding:"omitempty"`
	TechnicalStewardEmail    *string `json:"technical_steward_email" binding:"omitempty,email"`
	TechnicalStewardFullName *string `json:"technical_steward_full_name" binding:"omitempty"`
	Status                   *string `json:"status" binding:"omitempty"`
}

// Apply copies the supplied fields onto the record and reports whether
// any field was present in the request.
func (r *UpdateSystemRequest) Apply(rec *SystemRecord) bool {
	changed := false
	if r.SystemName != nil {
		rec.SystemName = *r.SystemName
		changed = true
	}
	if r.SystemDescription != nil {
		rec.SystemDescription = *r.SystemDescription
		changed = true
	}
	if r.BusinessStewardEmail != nil {
		rec.BusinessStewardEmail = *r.BusinessStewardEmail
		changed = true
	}
	if r.BusinessStewardFullName != nil {
		rec.BusinessStewardFullName = *r.BusinessStewardFullName
		changed = true
	}
	if r.SecurityStewardEmail != nil {
		rec.SecurityStewardEmail = *r.SecurityStewardEmail
		changed = true
	}
	if r.SecurityStewardFullName != nil {
		rec.SecurityStewardFullName = *r.SecurityStewardFullName
		changed = true
	}
	if r.TechnicalStewardEmail != nil {
		rec.TechnicalStewardEmail = *r.TechnicalStewardEmail
		changed = true
	}
	if r.TechnicalStewardFullName != nil {
		rec.TechnicalStewardFullName = *r.TechnicalStewardFullName
		changed = true
	}
	if r.Status != nil {
		rec.Status = *r.Status
		changed = true
	}
	return changed
}
