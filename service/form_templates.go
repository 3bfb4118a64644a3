package service

import "github.com/janseva-labs/aadhaar-form-assist/dto"

// formTemplates are the government form layouts the wizard offers. Fields
// with an explicit MappedFrom are filled straight from the identity record;
// the rest go through fuzzy label matching or are asked from the user.
var formTemplates = []dto.FormTemplate{
	{
		ID:          "jan-dhan",
		Name:        "Jan Dhan Yojana Account Opening",
		Description: "Open a bank account under Pradhan Mantri Jan Dhan Yojana",
		Fields: []dto.FormField{
			{ID: "applicantName", Label: "Applicant Name", Type: dto.FieldTypeText, Required: true, MappedFrom: dto.FieldName},
			{ID: "fatherName", Label: "Father's Name", Type: dto.FieldTypeText, Required: true, MappedFrom: dto.FieldFatherName},
			{ID: "dob", Label: "Date of Birth", Type: dto.FieldTypeDate, Required: true, MappedFrom: dto.FieldDOB},
			{ID: "gender", Label: "Gender", Type: dto.FieldTypeSelect, Required: true, Options: []string{"Male", "Female", "Other"}, MappedFrom: dto.FieldGender},
			{ID: "aadhaarNumber", Label: "Aadhaar Number", Type: dto.FieldTypeText, Required: true, MappedFrom: dto.FieldIDNumber},
			{ID: "mobileNumber", Label: "Mobile Number", Type: dto.FieldTypeText, Required: true},
			{ID: "occupation", Label: "Occupation", Type: dto.FieldTypeSelect, Required: true, Options: []string{"Agriculture", "Business", "Service", "Self-Employed", "Housewife", "Student", "Other"}},
			{ID: "monthlyIncome", Label: "Monthly Income (₹)", Type: dto.FieldTypeNumber, Required: true},
		},
	},
	{
		ID:          "pm-kisan",
		Name:        "PM-Kisan Scheme Registration",
		Description: "Register for Pradhan Mantri Kisan Samman Nidhi Yojana",
		Fields: []dto.FormField{
			{ID: "farmerName", Label: "Farmer Name", Type: dto.FieldTypeText, Required: true, MappedFrom: dto.FieldName},
			{ID: "fatherName", Label: "Father's Name", Type: dto.FieldTypeText, Required: true, MappedFrom: dto.FieldFatherName},
			{ID: "dob", Label: "Date of Birth", Type: dto.FieldTypeDate, Required: true, MappedFrom: dto.FieldDOB},
			{ID: "gender", Label: "Gender", Type: dto.FieldTypeSelect, Required: true, Options: []string{"Male", "Female", "Other"}, MappedFrom: dto.FieldGender},
			{ID: "aadhaarNumber", Label: "Aadhaar Number", Type: dto.FieldTypeText, Required: true, MappedFrom: dto.FieldIDNumber},
			{ID: "mobileNumber", Label: "Mobile Number", Type: dto.FieldTypeText, Required: true},
			{ID: "bankAccountNumber", Label: "Bank Account Number", Type: dto.FieldTypeText, Required: true},
			{ID: "ifscCode", Label: "IFSC Code", Type: dto.FieldTypeText, Required: true},
			{ID: "landArea", Label: "Total Land Area (in hectares)", Type: dto.FieldTypeNumber, Required: true},
			{ID: "landType", Label: "Land Type", Type: dto.FieldTypeSelect, Required: true, Options: []string{"Irrigated", "Un-irrigated", "Mixed"}},
		},
	},
}
