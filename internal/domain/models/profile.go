package models

// DoctorType enumerates the practitioner categories accepted by the
// platform during doctor profile completion.
type DoctorType string

const (
	DoctorTypeGeneral    DoctorType = "GENERAL"
	DoctorTypeSpecialist DoctorType = "SPECIALIST"
	DoctorTypeConsultant DoctorType = "CONSULTANT"
)

// DoctorProfileSubmission is the doctor profile-completion form as
// received from the browser. Specialities stay a list here; they are
// comma-joined only on the upstream wire.
type DoctorProfileSubmission struct {
	Education    string     `json:"education" validate:"required"`
	Experience   string     `json:"experience" validate:"required"`
	DoctorType   DoctorType `json:"doctorType" validate:"required,oneof=GENERAL SPECIALIST CONSULTANT"`
	Specialities []string   `json:"specialities" validate:"required,min=1,dive,required"`
}

// DoctorProfilePayload is the upstream wire form of a completed doctor
// profile. Specialities is a comma-joined string, as the platform expects.
type DoctorProfilePayload struct {
	Education    string     `json:"education"`
	Experience   string     `json:"experience"`
	DoctorType   DoctorType `json:"doctorType"`
	Specialities string     `json:"specialities"`
}

// DispensaryProfileSubmission is the dispensary profile-completion form.
type DispensaryProfileSubmission struct {
	Name          string   `json:"name" validate:"required"`
	Address       string   `json:"address" validate:"required"`
	Latitude      *float64 `json:"latitude" validate:"required"`
	Longitude     *float64 `json:"longitude" validate:"required"`
	ContactNumber string   `json:"contactNumber" validate:"required"`
	Website       string   `json:"website"`
	Type          string   `json:"type" validate:"required"`
}

// DispensaryProfile is the dispensary profile record shown on the
// dispensary dashboard. Every field is always present; missing upstream
// values surface as zero values rather than absent keys.
type DispensaryProfile struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	ContactNumber string   `json:"contactNumber"`
	Website       string   `json:"website"`
	Type          string   `json:"type"`
}

// ProfileStatus is the upstream profile-completion check response.
type ProfileStatus struct {
	IsComplete bool `json:"isComplete"`
}
