// internal/permits/draft_test.go
package permits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func filledDraft(code TypeCode) *Draft {
	return &Draft{
		PermitType:        code,
		UnitID:            "c1a5d6f0-0000-0000-0000-000000000001",
		ApplicantName:     "Budi Santoso",
		ApplicantEmail:    "budi@example.com",
		ApplicantPhone:    "081234567890",
		ApplicantRole:     "owner",
		ApplicantNIK:      "3201012345678901",
		ActivityName:      "Renovasi dapur",
		ActivityCategory:  "renovasi",
		Description:       "Penggantian kitchen set dan keramik lantai",
		ActivityDate:      "2026-09-15",
		StartDate:         "2026-09-15",
		EndDate:           "2026-10-01",
		StartTime:         "08:00",
		EndTime:           "17:00",
		NumWorkers:        "4",
		WorkScope:         "Interior dapur",
		ContractorCompany: "PT Karya Griya",
		ContractorName:    "Agus",
		ContractorPhone:   "081298765432",
		VehicleType:       "pickup",
		MoverCount:        "3",
		MovingCompany:     "CV Pindah Aman",
		DepositRequired:   "5000000",
		DepositPaid:       "5000000",
		DepositAccount:    "BCA 1234567890",
		DepositProofURL:   "https://cdn.example.com/proof.jpg",
		NamedDocuments:    map[string]string{"ktp": "https://cdn.example.com/ktp.jpg"},
		DocumentURLs:      []string{"https://cdn.example.com/ktp.jpg"},
	}
}

func TestResetClearsEverythingButIdentity(t *testing.T) {
	for _, pt := range Catalog() {
		d := filledDraft(TypeRenovasiMayor)
		d.Reset(pt.Value)

		assert.Equal(t, pt.Value, d.PermitType, string(pt.Value))
		assert.Equal(t, "Budi Santoso", d.ApplicantName)
		assert.Equal(t, "budi@example.com", d.ApplicantEmail)

		assert.Empty(t, d.UnitID)
		assert.Empty(t, d.ApplicantPhone)
		assert.Empty(t, d.ApplicantRole)
		assert.Empty(t, d.ApplicantNIK)
		assert.Empty(t, d.ActivityName)
		assert.Empty(t, d.Description)
		assert.Empty(t, d.ActivityDate)
		assert.Empty(t, d.NumWorkers)
		assert.Empty(t, d.ContractorCompany)
		assert.Empty(t, d.VehicleType)
		assert.Empty(t, d.DepositRequired)
		assert.Empty(t, d.DepositAccount)
		assert.Nil(t, d.NamedDocuments)
		assert.Nil(t, d.DocumentURLs)
	}
}

func TestAttachNamedDocument(t *testing.T) {
	d := &Draft{}

	d.AttachNamedDocument("ktp", "https://cdn.example.com/ktp-1.jpg")
	d.AttachNamedDocument("work_plan", "https://cdn.example.com/plan.pdf")

	assert.Equal(t, "https://cdn.example.com/ktp-1.jpg", d.NamedDocuments["ktp"])
	assert.Equal(t, []string{"https://cdn.example.com/ktp-1.jpg", "https://cdn.example.com/plan.pdf"}, d.DocumentURLs)
}

func TestAttachNamedDocumentReplacesSlot(t *testing.T) {
	d := &Draft{}
	d.AttachNamedDocument("ktp", "https://cdn.example.com/ktp-1.jpg")
	d.AttachNamedDocument("ktp", "https://cdn.example.com/ktp-2.jpg")

	assert.Equal(t, "https://cdn.example.com/ktp-2.jpg", d.NamedDocuments["ktp"])
	assert.Equal(t, []string{"https://cdn.example.com/ktp-2.jpg"}, d.DocumentURLs)
}

func TestRemoveNamedDocumentRetractsURL(t *testing.T) {
	d := &Draft{}
	d.AttachNamedDocument("ktp", "https://cdn.example.com/ktp.jpg")
	d.AttachNamedDocument("work_plan", "https://cdn.example.com/plan.pdf")

	d.RemoveNamedDocument("ktp")

	_, ok := d.NamedDocuments["ktp"]
	assert.False(t, ok)
	assert.Equal(t, []string{"https://cdn.example.com/plan.pdf"}, d.DocumentURLs)

	// Removing an absent slot is a no-op.
	d.RemoveNamedDocument("ktp")
	assert.Equal(t, []string{"https://cdn.example.com/plan.pdf"}, d.DocumentURLs)
}

func TestValidateStepApplicantUnit(t *testing.T) {
	d := &Draft{PermitType: TypeRenovasiMinor}
	missing := ValidateStep(StepApplicantUnit, d)
	assert.Equal(t, []string{"unit_id", "applicant_name", "applicant_role", "applicant_nik"}, missing)

	d.UnitID = "c1a5d6f0-0000-0000-0000-000000000001"
	d.ApplicantName = "Budi Santoso"
	missing = ValidateStep(StepApplicantUnit, d)
	assert.Equal(t, []string{"applicant_role", "applicant_nik"}, missing)

	d.ApplicantRole = "owner"
	d.ApplicantNIK = "3201012345678901"
	assert.Empty(t, ValidateStep(StepApplicantUnit, d))
}

func TestValidateStepActivityDetails(t *testing.T) {
	d := &Draft{PermitType: TypeIzinKegiatan}
	missing := ValidateStep(StepActivityDetails, d)
	assert.Equal(t, []string{"activity_name", "description", "activity_date"}, missing)

	d.ActivityName = "Arisan RT"
	d.Description = "Arisan bulanan warga"
	d.ActivityDate = "2026-09-20"
	assert.Empty(t, ValidateStep(StepActivityDetails, d))
}

func TestValidateStepActivityDetailsDeposit(t *testing.T) {
	// Deposit refunds only need a description; there is no activity to plan.
	d := &Draft{PermitType: TypePencairanDeposit}
	missing := ValidateStep(StepActivityDetails, d)
	assert.Equal(t, []string{"description"}, missing)

	d.Description = "Pencairan deposit renovasi unit A-12-08"
	assert.Empty(t, ValidateStep(StepActivityDetails, d))
}

func TestValidateStepDocumentsNeverBlocks(t *testing.T) {
	assert.Empty(t, ValidateStep(StepDocuments, &Draft{}))
}

func TestWizardFlow(t *testing.T) {
	w := NewWizard()
	assert.Equal(t, StepPermitType, w.Step)

	// Cannot advance without a type.
	missing := w.Next()
	assert.Equal(t, []string{"permit_type"}, missing)
	assert.Equal(t, StepPermitType, w.Step)

	w.SelectType(TypeRenovasiMinor)
	assert.Equal(t, StepApplicantUnit, w.Step)

	missing = w.Next()
	assert.Contains(t, missing, "unit_id")
	assert.Equal(t, StepApplicantUnit, w.Step)

	w.Draft.UnitID = "c1a5d6f0-0000-0000-0000-000000000001"
	w.Draft.ApplicantName = "Budi Santoso"
	w.Draft.ApplicantRole = "owner"
	w.Draft.ApplicantNIK = "3201012345678901"
	assert.Empty(t, w.Next())
	assert.Equal(t, StepActivityDetails, w.Step)

	w.Draft.ActivityName = "Renovasi dapur"
	w.Draft.Description = "Penggantian kitchen set"
	w.Draft.ActivityDate = "2026-09-15"
	assert.Empty(t, w.Next())
	assert.Equal(t, StepDocuments, w.Step)

	// Last step never advances past itself.
	assert.Empty(t, w.Next())
	assert.Equal(t, StepDocuments, w.Step)
}

func TestWizardBackKeepsForm(t *testing.T) {
	w := NewWizard()
	w.SelectType(TypePindahMasuk)
	w.Draft.UnitID = "c1a5d6f0-0000-0000-0000-000000000001"

	w.Back()
	assert.Equal(t, StepPermitType, w.Step)
	assert.Equal(t, "c1a5d6f0-0000-0000-0000-000000000001", w.Draft.UnitID)

	w.Back()
	assert.Equal(t, StepPermitType, w.Step)
}

func TestWizardSelectTypeResetsForm(t *testing.T) {
	w := NewWizard()
	w.SelectType(TypeRenovasiMinor)
	w.Draft.ApplicantName = "Budi Santoso"
	w.Draft.ApplicantEmail = "budi@example.com"
	w.Draft.NumWorkers = "4"

	w.Back()
	w.SelectType(TypePindahKeluar)

	assert.Equal(t, StepApplicantUnit, w.Step)
	assert.Equal(t, TypePindahKeluar, w.Draft.PermitType)
	assert.Equal(t, "Budi Santoso", w.Draft.ApplicantName)
	assert.Equal(t, "budi@example.com", w.Draft.ApplicantEmail)
	assert.Empty(t, w.Draft.NumWorkers)
}

func TestNewWizardWithType(t *testing.T) {
	w := NewWizardWithType(TypeAksesKontraktor, "Siti Rahma", "siti@example.com")

	assert.Equal(t, StepApplicantUnit, w.Step)
	assert.Equal(t, TypeAksesKontraktor, w.Draft.PermitType)
	assert.Equal(t, "Siti Rahma", w.Draft.ApplicantName)
	assert.Equal(t, "siti@example.com", w.Draft.ApplicantEmail)
}
