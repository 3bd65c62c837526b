// internal/permits/draft.go
package permits

// Draft is the flat, in-progress permit application. It is the union of all
// fields used across the permit types; only the subset relevant to the chosen
// type gets filled in. Numeric-looking fields stay strings until submission,
// where they are coerced (see BuildTicket).
type Draft struct {
	PermitType TypeCode `json:"permit_type"`

	// Applicant & unit
	UnitID         string `json:"unit_id"`
	ApplicantName  string `json:"applicant_name"`
	ApplicantEmail string `json:"applicant_email"`
	ApplicantPhone string `json:"applicant_phone"`
	ApplicantRole  string `json:"applicant_role"`
	ApplicantNIK   string `json:"applicant_nik"`

	// Activity
	ActivityName     string `json:"activity_name"`
	ActivityCategory string `json:"activity_category"`
	Description      string `json:"description"`
	ActivityDate     string `json:"activity_date"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`

	// Work / contractor
	NumWorkers        string `json:"num_workers"`
	WorkScope         string `json:"work_scope"`
	ContractorCompany string `json:"contractor_company"`
	ContractorName    string `json:"contractor_name"`
	ContractorPhone   string `json:"contractor_phone"`

	// Moving
	VehicleType   string `json:"vehicle_type"`
	MoverCount    string `json:"mover_count"`
	MovingCompany string `json:"moving_company"`

	// Deposit
	DepositRequired string `json:"deposit_required"`
	DepositPaid     string `json:"deposit_paid"`
	DepositAccount  string `json:"deposit_account"`
	DepositProofURL string `json:"deposit_proof_url"`

	// Documents
	NamedDocuments map[string]string `json:"named_documents"`
	DocumentURLs   []string          `json:"document_urls"`
}

// Reset clears the draft back to an empty state for the given permit type,
// carrying over only the applicant name and email.
func (d *Draft) Reset(code TypeCode) {
	name, email := d.ApplicantName, d.ApplicantEmail
	*d = Draft{
		PermitType:     code,
		ApplicantName:  name,
		ApplicantEmail: email,
	}
}

// AttachNamedDocument stores url under the slot key and appends it to the
// accumulating document list.
func (d *Draft) AttachNamedDocument(key, url string) {
	if d.NamedDocuments == nil {
		d.NamedDocuments = make(map[string]string)
	}
	if prev, ok := d.NamedDocuments[key]; ok {
		d.retractURL(prev)
	}
	d.NamedDocuments[key] = url
	d.DocumentURLs = append(d.DocumentURLs, url)
}

// RemoveNamedDocument clears the slot entry and retracts the matching URL from
// the document list.
func (d *Draft) RemoveNamedDocument(key string) {
	url, ok := d.NamedDocuments[key]
	if !ok {
		return
	}
	delete(d.NamedDocuments, key)
	d.retractURL(url)
}

func (d *Draft) retractURL(url string) {
	for i, u := range d.DocumentURLs {
		if u == url {
			d.DocumentURLs = append(d.DocumentURLs[:i], d.DocumentURLs[i+1:]...)
			return
		}
	}
}

// Step identifies a wizard step.
type Step int

const (
	StepPermitType Step = iota + 1
	StepApplicantUnit
	StepActivityDetails
	StepDocuments
)

// ValidateStep returns the names of the fields that block progression out of
// the given step. An empty slice means the step is complete.
func ValidateStep(step Step, d *Draft) []string {
	var missing []string
	switch step {
	case StepPermitType:
		if d.PermitType == "" {
			missing = append(missing, "permit_type")
		}
	case StepApplicantUnit:
		if d.UnitID == "" {
			missing = append(missing, "unit_id")
		}
		if d.ApplicantName == "" {
			missing = append(missing, "applicant_name")
		}
		if d.ApplicantRole == "" {
			missing = append(missing, "applicant_role")
		}
		if d.ApplicantNIK == "" {
			missing = append(missing, "applicant_nik")
		}
	case StepActivityDetails:
		if d.PermitType == TypePencairanDeposit {
			if d.Description == "" {
				missing = append(missing, "description")
			}
			return missing
		}
		if d.ActivityName == "" {
			missing = append(missing, "activity_name")
		}
		if d.Description == "" {
			missing = append(missing, "description")
		}
		if d.ActivityDate == "" {
			missing = append(missing, "activity_date")
		}
	case StepDocuments:
		// Submission itself is never blocked on this step.
	}
	return missing
}

// Validate runs all step validators and reports every missing field.
func Validate(d *Draft) []string {
	var missing []string
	for _, step := range []Step{StepPermitType, StepApplicantUnit, StepActivityDetails, StepDocuments} {
		missing = append(missing, ValidateStep(step, d)...)
	}
	return missing
}

// Wizard is the four-step application sequencer.
type Wizard struct {
	Step  Step
	Draft Draft
}

// NewWizard starts at the permit type selection step.
func NewWizard() *Wizard {
	return &Wizard{Step: StepPermitType}
}

// NewWizardWithType skips type selection when a type arrives pre-selected
// (deep link), starting directly at the applicant step.
func NewWizardWithType(code TypeCode, applicantName, applicantEmail string) *Wizard {
	w := &Wizard{Step: StepApplicantUnit}
	w.Draft.ApplicantName = applicantName
	w.Draft.ApplicantEmail = applicantEmail
	w.Draft.Reset(code)
	return w
}

// SelectType resets the draft for the chosen type and advances to step 2.
func (w *Wizard) SelectType(code TypeCode) {
	w.Draft.Reset(code)
	w.Step = StepApplicantUnit
}

// Next advances one step if the current step validates, otherwise returns the
// missing field names and stays put.
func (w *Wizard) Next() []string {
	if missing := ValidateStep(w.Step, &w.Draft); len(missing) > 0 {
		return missing
	}
	if w.Step < StepDocuments {
		w.Step++
	}
	return nil
}

// Back moves one step toward type selection. Going from step 2 back to step 1
// re-opens type selection without resetting the form. At step 1 it is a no-op;
// leaving the wizard entirely is the caller's concern.
func (w *Wizard) Back() {
	if w.Step > StepPermitType {
		w.Step--
	}
}
