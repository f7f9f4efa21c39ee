package entity

import "time"

// CompanyStatus is the server-derived snapshot for one company. The client never
// computes NextEmployeeID itself; it is rebuilt wholesale on every refresh.
type CompanyStatus struct {
	CompanyID            string
	CompanyCompleted     bool
	CompanyInProgress    bool
	CompletionPercentage int
	LastModified         *time.Time
	EmployeeCount        int
	EmployeeIDs          []int
	NextEmployeeID       int
}

func (s *CompanyStatus) HasEmployee(id int) bool {
	for _, known := range s.EmployeeIDs {
		if known == id {
			return true
		}
	}
	return false
}
