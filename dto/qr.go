package dto

import (
	"encoding/xml"
	"strings"
)

// AadhaarQRData is the XML payload embedded in the Aadhaar print-letter QR
// code (UIDAI PrintLetterBarcodeData format).
type AadhaarQRData struct {
	XMLName     xml.Name `xml:"PrintLetterBarcodeData"`
	UID         string   `xml:"uid,attr"`
	Name        string   `xml:"name,attr"`
	Gender      string   `xml:"gender,attr"`
	YearOfBirth string   `xml:"yob,attr"`
	DateOfBirth string   `xml:"dob,attr"`
	CO          string   `xml:"co,attr"` // care of, usually "S/O <father>"
	House       string   `xml:"house,attr"`
	Street      string   `xml:"street,attr"`
	Landmark    string   `xml:"lm,attr"`
	Locality    string   `xml:"loc,attr"`
	VTC         string   `xml:"vtc,attr"` // village/town/city
	PO          string   `xml:"po,attr"`  // post office
	District    string   `xml:"dist,attr"`
	SubDistrict string   `xml:"subdist,attr"`
	State       string   `xml:"state,attr"`
	PC          string   `xml:"pc,attr"` // pin code
}

// ToRecord converts QR payload attributes into an IdentityRecord. QR data is
// authoritative, so no heuristic cleaning is applied beyond normalizing the
// gender code.
func (q *AadhaarQRData) ToRecord() IdentityRecord {
	return IdentityRecord{
		Name:       q.Name,
		FatherName: q.fatherName(),
		DOB:        q.dob(),
		Gender:     q.gender(),
		IDNumber:   q.UID,
		Address:    q.fullAddress(),
		Source:     "qr",
	}
}

// fatherName strips the relation prefix from the care-of attribute.
func (q *AadhaarQRData) fatherName() string {
	co := strings.TrimSpace(q.CO)
	for _, prefix := range []string{"S/O", "D/O", "W/O", "C/O", "s/o", "d/o", "w/o", "c/o"} {
		if strings.HasPrefix(co, prefix) {
			return strings.TrimSpace(co[len(prefix):])
		}
	}
	return co
}

func (q *AadhaarQRData) dob() string {
	if q.DateOfBirth != "" {
		return q.DateOfBirth
	}
	return q.YearOfBirth
}

func (q *AadhaarQRData) gender() string {
	switch strings.ToUpper(strings.TrimSpace(q.Gender)) {
	case "M", "MALE":
		return "Male"
	case "F", "FEMALE":
		return "Female"
	}
	return q.Gender
}

func (q *AadhaarQRData) fullAddress() string {
	parts := []string{}
	for _, p := range []string{q.House, q.Street, q.Landmark, q.Locality, q.VTC, q.PO, q.SubDistrict, q.District, q.State, q.PC} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
