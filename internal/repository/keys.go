package repository

import "strings"

// 键格式：<实体>:<归属ID>[:<次级ID>]
const (
	prefixUser              = "user:"
	prefixUserEmail         = "user_email:"
	prefixStudentProfile    = "student_profile:"
	prefixQRToken           = "qr_token:"
	prefixCompany           = "company:"
	prefixCompanyOwner      = "company_owner:"
	prefixCompanyPreference = "company_preference:"
	prefixInterest          = "interest:"
	prefixConnection        = "connection:"
	prefixConnectionNotes   = "connection_notes:"
	prefixConnectionStudent = "connection_student:"
	prefixConnectionCompany = "connection_company:"
	prefixConnectionPair    = "connection_pair:"
)

func userKey(userID string) string {
	return prefixUser + userID
}

func userEmailKey(email string) string {
	return prefixUserEmail + strings.ToLower(strings.TrimSpace(email))
}

func studentProfileKey(userID string) string {
	return prefixStudentProfile + userID
}

func qrTokenKey(token string) string {
	return prefixQRToken + token
}

func companyKey(id string) string {
	return prefixCompany + id
}

func companyOwnerKey(userID string) string {
	return prefixCompanyOwner + userID
}

func preferencePrefix(studentUserID string) string {
	return prefixCompanyPreference + studentUserID + ":"
}

func preferenceKey(studentUserID, companyID string) string {
	return preferencePrefix(studentUserID) + companyID
}

func interestPrefix(userID string) string {
	return prefixInterest + userID + ":"
}

func interestKey(userID, companyID string) string {
	return interestPrefix(userID) + companyID
}

func connectionKey(id string) string {
	return prefixConnection + id
}

func connectionNotesKey(id, party string) string {
	return prefixConnectionNotes + id + ":" + party
}

func connectionStudentPrefix(studentUserID string) string {
	return prefixConnectionStudent + studentUserID + ":"
}

func connectionCompanyPrefix(companyUserID string) string {
	return prefixConnectionCompany + companyUserID + ":"
}

func connectionPairKey(careerFairID, studentUserID, companyUserID string) string {
	return prefixConnectionPair + careerFairID + ":" + studentUserID + ":" + companyUserID
}
