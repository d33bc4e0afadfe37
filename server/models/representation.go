package models

import "time"

type PhoneNumberRepresentation struct {
	ID          uint   `json:"id"`
	Type        string `json:"type"`
	PhoneNumber string `json:"phone_number"`
}

type EmailAddressRepresentation struct {
	ID           uint   `json:"id"`
	Type         string `json:"type"`
	EmailAddress string `json:"email_address"`
}

// ContactInfo is a contact without its phone numbers & email addresses
type ContactInfo struct {
	ID          uint      `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	MiddleName  string    `json:"middle_name"`
	Nickname    string    `json:"nickname"`
	Designation string    `json:"designation"`
	Company     string    `json:"company"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ContactRepresentation struct {
	ContactInfo
	PhoneNumbers   []PhoneNumberRepresentation  `json:"phone_numbers"`
	EmailAddresses []EmailAddressRepresentation `json:"email_addresses"`
}

func (phone *PhoneNumber) Representation() PhoneNumberRepresentation {
	return PhoneNumberRepresentation{ID: phone.ID, Type: phone.Type, PhoneNumber: phone.PhoneNumber}
}

func (email *EmailAddress) Representation() EmailAddressRepresentation {
	return EmailAddressRepresentation{ID: email.ID, Type: email.Type, EmailAddress: email.EmailAddress}
}

func (person *Person) Info() ContactInfo {
	return ContactInfo{
		ID:          person.ID,
		FirstName:   person.FirstName,
		LastName:    person.LastName,
		MiddleName:  person.MiddleName,
		Nickname:    person.Nickname,
		Designation: person.Designation,
		Company:     person.Company,
		CreatedAt:   person.CreatedAt,
		UpdatedAt:   person.UpdatedAt,
	}
}

// Representation renders the contact with nested lists, empty lists included
func (person *Person) Representation() ContactRepresentation {
	representation := ContactRepresentation{
		ContactInfo:    person.Info(),
		PhoneNumbers:   make([]PhoneNumberRepresentation, 0, len(person.PhoneNumbers)),
		EmailAddresses: make([]EmailAddressRepresentation, 0, len(person.EmailAddresses)),
	}

	for i := range person.PhoneNumbers {
		representation.PhoneNumbers = append(representation.PhoneNumbers, person.PhoneNumbers[i].Representation())
	}
	for i := range person.EmailAddresses {
		representation.EmailAddresses = append(representation.EmailAddresses, person.EmailAddresses[i].Representation())
	}

	return representation
}

// ContactRepresentations renders 'people' in order
func ContactRepresentations(people []Person) []ContactRepresentation {
	representations := make([]ContactRepresentation, 0, len(people))
	for i := range people {
		representations = append(representations, people[i].Representation())
	}
	return representations
}
