package models

// Subjects lists the 16 SQE assessment subjects. Question content and
// subject-coverage badges are both keyed on these names.
var Subjects = []string{
	"Business Law and Practice",
	"Dispute Resolution",
	"Contract Law",
	"Tort Law",
	"Legal System of England and Wales",
	"Constitutional and Administrative Law",
	"EU Law and Legal Services",
	"Property Practice",
	"Wills and the Administration of Estates",
	"Solicitors Accounts",
	"Land Law",
	"Trusts",
	"Criminal Law",
	"Criminal Practice",
	"Professional Conduct and Ethics",
	"Taxation",
}

// IsSubject reports whether s is one of the canonical SQE subjects.
func IsSubject(s string) bool {
	for _, subject := range Subjects {
		if subject == s {
			return true
		}
	}
	return false
}
