package entity

const (
	FormTypeCompany  = "company"
	FormTypeEmployee = "employee"
)

type Question struct {
	QuestionID          string
	Question            string
	QuestionType        string
	QuestionTypeDetails string
	Required            bool
	Section             string
	QuestionOrder       int
	AllowFileUpload     bool
	HelpText            string
}
