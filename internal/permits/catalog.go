// internal/permits/catalog.go
package permits

// TypeCode identifies one of the fixed permit types residents can apply for.
type TypeCode string

const (
	TypeRenovasiMinor      TypeCode = "renovasi_minor"
	TypeRenovasiMayor      TypeCode = "renovasi_mayor"
	TypePembangunanKavling TypeCode = "pembangunan_kavling"
	TypeGalian             TypeCode = "galian"
	TypePindahMasuk        TypeCode = "pindah_masuk"
	TypePindahKeluar       TypeCode = "pindah_keluar"
	TypePencairanDeposit   TypeCode = "pencairan_deposit"
	TypeAksesKontraktor    TypeCode = "akses_kontraktor"
	TypeIzinKegiatan       TypeCode = "izin_kegiatan"
)

// PermitType describes one catalog entry shown on the type selection screen.
type PermitType struct {
	Value           TypeCode `json:"value"`
	Label           string   `json:"label"`
	Icon            string   `json:"icon"`
	Description     string   `json:"description"`
	Color           string   `json:"color"`
	BackgroundColor string   `json:"background_color"`
}

var catalog = []PermitType{
	{TypeRenovasiMinor, "Renovasi Minor", "paintbrush", "Perbaikan ringan tanpa perubahan struktur", "#2563EB", "#DBEAFE"},
	{TypeRenovasiMayor, "Renovasi Mayor", "hammer", "Renovasi dengan perubahan struktur bangunan", "#7C3AED", "#EDE9FE"},
	{TypePembangunanKavling, "Pembangunan Kavling", "building", "Pembangunan rumah baru di atas kavling", "#EA580C", "#FFEDD5"},
	{TypeGalian, "Galian", "shovel", "Pekerjaan galian tanah atau saluran", "#92400E", "#FEF3C7"},
	{TypePindahMasuk, "Pindah Masuk", "truck", "Pindahan barang masuk ke unit", "#059669", "#D1FAE5"},
	{TypePindahKeluar, "Pindah Keluar", "log-out", "Pindahan barang keluar dari unit", "#DC2626", "#FEE2E2"},
	{TypePencairanDeposit, "Pencairan Deposit", "banknote", "Pengembalian deposit renovasi", "#0891B2", "#CFFAFE"},
	{TypeAksesKontraktor, "Akses Kontraktor", "hard-hat", "Izin akses kontraktor ke dalam kawasan", "#4F46E5", "#E0E7FF"},
	{TypeIzinKegiatan, "Izin Kegiatan", "calendar", "Penyelenggaraan kegiatan di area bersama", "#DB2777", "#FCE7F3"},
}

// Catalog returns the ordered list of permit types.
func Catalog() []PermitType {
	out := make([]PermitType, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for code.
func Lookup(code TypeCode) (PermitType, bool) {
	for _, pt := range catalog {
		if pt.Value == code {
			return pt, true
		}
	}
	return PermitType{}, false
}

// DocumentSlot is a permit-type-specific required upload, distinct from the
// generic accumulating document list.
type DocumentSlot struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Hint  string `json:"hint"`
}

var documentSlots = map[TypeCode][]DocumentSlot{
	TypeRenovasiMinor: {
		{"ktp", "KTP Pemohon", "Foto atau scan KTP yang masih berlaku"},
		{"work_plan", "Rencana Kerja", "Lingkup pekerjaan dan jadwal renovasi"},
		{"supporting", "Dokumen Pendukung", "Dokumen lain yang relevan (opsional)"},
	},
	TypeRenovasiMayor: {
		{"ktp", "KTP Pemohon", "Foto atau scan KTP yang masih berlaku"},
		{"work_plan", "Rencana Kerja", "Lingkup pekerjaan dan jadwal renovasi"},
		{"building_drawing", "Gambar Bangunan", "Gambar rencana perubahan struktur"},
		{"supporting", "Dokumen Pendukung", "Dokumen lain yang relevan (opsional)"},
	},
	TypePembangunanKavling: {
		{"ktp", "KTP Pemohon", "Foto atau scan KTP yang masih berlaku"},
		{"imb", "PBG/IMB", "Persetujuan bangunan gedung"},
		{"building_drawing", "Gambar Bangunan", "Gambar rencana bangunan"},
		{"supporting", "Dokumen Pendukung", "Dokumen lain yang relevan (opsional)"},
	},
	TypeGalian: {
		{"ktp", "KTP Pemohon", "Foto atau scan KTP yang masih berlaku"},
		{"work_plan", "Rencana Galian", "Titik, kedalaman, dan jadwal galian"},
		{"supporting", "Dokumen Pendukung", "Dokumen lain yang relevan (opsional)"},
	},
	TypePindahMasuk: {
		{"ktp", "KTP Pemohon", "Foto atau scan KTP yang masih berlaku"},
		{"handover_report", "Berita Acara Serah Terima", "BAST unit dari pengembang"},
	},
	TypePindahKeluar: {
		{"ktp", "KTP Pemohon", "Foto atau scan KTP yang masih berlaku"},
		{"clearance", "Surat Keterangan Lunas", "Bukti tidak ada tunggakan IPL"},
	},
	TypePencairanDeposit: {
		{"ktp", "KTP Pemohon", "Foto atau scan KTP yang masih berlaku"},
		{"deposit_receipt", "Bukti Setor Deposit", "Kuitansi setoran deposit awal"},
		{"bank_book", "Buku Tabungan", "Halaman depan rekening tujuan pencairan"},
	},
	TypeAksesKontraktor: {
		{"ktp", "KTP Pemohon", "Foto atau scan KTP yang masih berlaku"},
		{"contractor_agreement", "Kontrak Kerja Kontraktor", "Perjanjian kerja dengan kontraktor"},
		{"supporting", "Dokumen Pendukung", "Dokumen lain yang relevan (opsional)"},
	},
	TypeIzinKegiatan: {
		{"ktp", "KTP Penanggung Jawab", "Foto atau scan KTP yang masih berlaku"},
		{"event_proposal", "Proposal Kegiatan", "Deskripsi, jadwal, dan perkiraan peserta"},
	},
}

var fallbackSlots = []DocumentSlot{
	{"ktp", "KTP Pemohon", "Foto atau scan KTP yang masih berlaku"},
	{"supporting", "Dokumen Pendukung", "Dokumen lain yang relevan"},
}

// DocumentSlots returns the required upload slots for a permit type. An
// unknown type falls back to the two-slot default.
func DocumentSlots(code TypeCode) []DocumentSlot {
	if slots, ok := documentSlots[code]; ok {
		out := make([]DocumentSlot, len(slots))
		copy(out, slots)
		return out
	}
	out := make([]DocumentSlot, len(fallbackSlots))
	copy(out, fallbackSlots)
	return out
}

// Sections describes which form section groups apply to a permit type. The
// groups are not mutually exclusive.
type Sections struct {
	Construction    bool `json:"construction"`
	Moving          bool `json:"moving"`
	Deposit         bool `json:"deposit"`
	Contractor      bool `json:"contractor"`
	Activity        bool `json:"activity"`
	GenericActivity bool `json:"generic_activity"`
	WorkerDetail    bool `json:"worker_detail"`
}

// SectionsFor maps a permit type onto its visible section groups.
func SectionsFor(code TypeCode) Sections {
	s := Sections{}
	switch code {
	case TypeRenovasiMinor, TypeRenovasiMayor, TypePembangunanKavling, TypeGalian:
		s.Construction = true
	case TypePindahMasuk, TypePindahKeluar:
		s.Moving = true
	case TypePencairanDeposit:
		s.Deposit = true
	case TypeAksesKontraktor:
		s.Contractor = true
	case TypeIzinKegiatan:
		s.Activity = true
	}
	s.GenericActivity = !s.Deposit
	s.WorkerDetail = s.Construction || s.Contractor || s.Activity
	return s
}
