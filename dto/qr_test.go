package dto

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAadhaarQRDataToRecord(t *testing.T) {
	payload := `<PrintLetterBarcodeData uid="234512345678" name="Ravi Kumar"` +
		` gender="M" dob="15/08/1990" co="S/O Mohan Kumar" house="42"` +
		` street="MG Road" vtc="Bengaluru" dist="Bengaluru Urban"` +
		` state="Karnataka" pc="560038"/>`

	var qr AadhaarQRData
	assert.NoError(t, xml.Unmarshal([]byte(payload), &qr))

	rec := qr.ToRecord()

	assert.Equal(t, "Ravi Kumar", rec.Name)
	assert.Equal(t, "Mohan Kumar", rec.FatherName)
	assert.Equal(t, "15/08/1990", rec.DOB)
	assert.Equal(t, "Male", rec.Gender)
	assert.Equal(t, "234512345678", rec.IDNumber)
	assert.Equal(t, "42, MG Road, Bengaluru, Bengaluru Urban, Karnataka, 560038", rec.Address)
	assert.Equal(t, "qr", rec.Source)
}

func TestAadhaarQRDataYearOfBirthFallback(t *testing.T) {
	var qr AadhaarQRData
	assert.NoError(t, xml.Unmarshal([]byte(`<PrintLetterBarcodeData uid="1" name="A B" yob="1990"/>`), &qr))

	assert.Equal(t, "1990", qr.ToRecord().DOB)
}

func TestIdentityRecordValue(t *testing.T) {
	rec := IdentityRecord{
		Name:       "Ravi Kumar",
		FatherName: "Mohan Kumar",
		DOB:        "15/08/1990",
		Gender:     "Male",
		IDNumber:   "234512345678",
		Address:    "42 MG Road, Bengaluru",
	}

	assert.Equal(t, "Ravi Kumar", rec.Value(FieldName))
	assert.Equal(t, "Mohan Kumar", rec.Value(FieldFatherName))
	assert.Equal(t, "15/08/1990", rec.Value(FieldDOB))
	assert.Equal(t, "Male", rec.Value(FieldGender))
	assert.Equal(t, "234512345678", rec.Value(FieldIDNumber))
	assert.Equal(t, "42 MG Road, Bengaluru", rec.Value(FieldAddress))
	assert.Empty(t, rec.Value(CanonicalField("unknown")))
}
