// internal/permits/catalog_test.go
package permits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogOrderAndContent(t *testing.T) {
	types := Catalog()

	assert.Len(t, types, 9)
	want := []TypeCode{
		TypeRenovasiMinor,
		TypeRenovasiMayor,
		TypePembangunanKavling,
		TypeGalian,
		TypePindahMasuk,
		TypePindahKeluar,
		TypePencairanDeposit,
		TypeAksesKontraktor,
		TypeIzinKegiatan,
	}
	for i, pt := range types {
		assert.Equal(t, want[i], pt.Value)
		assert.NotEmpty(t, pt.Label)
		assert.NotEmpty(t, pt.Icon)
		assert.NotEmpty(t, pt.Description)
		assert.NotEmpty(t, pt.Color)
		assert.NotEmpty(t, pt.BackgroundColor)
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	types := Catalog()
	types[0].Label = "mutated"

	fresh, ok := Lookup(TypeRenovasiMinor)
	assert.True(t, ok)
	assert.Equal(t, "Renovasi Minor", fresh.Label)
}

func TestLookup(t *testing.T) {
	pt, ok := Lookup(TypePencairanDeposit)
	assert.True(t, ok)
	assert.Equal(t, "Pencairan Deposit", pt.Label)

	_, ok = Lookup("parkir_inap")
	assert.False(t, ok)
}

func TestDocumentSlotsContractorAccess(t *testing.T) {
	slots := DocumentSlots(TypeAksesKontraktor)

	assert.Len(t, slots, 3)
	assert.Equal(t, "ktp", slots[0].Key)
	assert.Equal(t, "contractor_agreement", slots[1].Key)
	assert.Equal(t, "supporting", slots[2].Key)
}

func TestDocumentSlotsFallback(t *testing.T) {
	slots := DocumentSlots("parkir_inap")

	assert.Len(t, slots, 2)
	assert.Equal(t, "ktp", slots[0].Key)
	assert.Equal(t, "supporting", slots[1].Key)
}

func TestDocumentSlotsEveryTypeHasKTP(t *testing.T) {
	for _, pt := range Catalog() {
		slots := DocumentSlots(pt.Value)
		assert.NotEmpty(t, slots, string(pt.Value))
		assert.Equal(t, "ktp", slots[0].Key, string(pt.Value))
	}
}

func TestSectionsFor(t *testing.T) {
	tests := []struct {
		code TypeCode
		want Sections
	}{
		{TypeRenovasiMinor, Sections{Construction: true, GenericActivity: true, WorkerDetail: true}},
		{TypeRenovasiMayor, Sections{Construction: true, GenericActivity: true, WorkerDetail: true}},
		{TypePembangunanKavling, Sections{Construction: true, GenericActivity: true, WorkerDetail: true}},
		{TypeGalian, Sections{Construction: true, GenericActivity: true, WorkerDetail: true}},
		{TypePindahMasuk, Sections{Moving: true, GenericActivity: true}},
		{TypePindahKeluar, Sections{Moving: true, GenericActivity: true}},
		{TypePencairanDeposit, Sections{Deposit: true}},
		{TypeAksesKontraktor, Sections{Contractor: true, GenericActivity: true, WorkerDetail: true}},
		{TypeIzinKegiatan, Sections{Activity: true, GenericActivity: true, WorkerDetail: true}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SectionsFor(tt.code), string(tt.code))
	}
}
