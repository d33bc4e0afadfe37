package models

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	HOME_TYPE   = "home"
	MOBILE_TYPE = "mobile"
	FAX_TYPE    = "fax"
	WORK_TYPE   = "work"
	OTHER_TYPE  = "other"
)

var (
	PhoneNumberTypes  = []string{HOME_TYPE, MOBILE_TYPE, FAX_TYPE, WORK_TYPE, OTHER_TYPE}
	EmailAddressTypes = []string{HOME_TYPE, WORK_TYPE, OTHER_TYPE}

	// fields a partial update may change
	patchableFields = []string{"first_name",
		"middle_name",
		"last_name",
		"nickname",
		"designation",
		"company",
	}
)

type Person struct {
	BaseModel
	FirstName      string         `gorm:"size:200;not null"`
	MiddleName     string         `gorm:"size:200"`
	LastName       string         `gorm:"size:200;not null"`
	Nickname       string         `gorm:"size:100"`
	Designation    string         `gorm:"size:200"`
	Company        string         `gorm:"size:255"`
	UserID         *uint          `gorm:"index"`
	PhoneNumbers   []PhoneNumber  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	EmailAddresses []EmailAddress `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (Person) TableName() string {
	return "contacts_people"
}

type PhoneNumber struct {
	BaseModel
	PersonID    uint   `gorm:"not null;index"`
	Type        string `gorm:"size:10;not null"`
	PhoneNumber string `gorm:"size:50;not null"`
}

func (PhoneNumber) TableName() string {
	return "contacts_phone_numbers"
}

type EmailAddress struct {
	BaseModel
	PersonID     uint   `gorm:"not null;uniqueIndex:idx_person_email"`
	Type         string `gorm:"size:10;not null"`
	EmailAddress string `gorm:"size:255;not null;index;uniqueIndex:idx_person_email"`
}

func (EmailAddress) TableName() string {
	return "contacts_email_addresses"
}

// ContactFields holds validated input for creating or fully updating a contact
type ContactFields struct {
	FirstName       string
	MiddleName      string
	LastName        string
	Nickname        string
	Designation     string
	Company         string
	PhoneNumber     string
	PhoneNumberType string
	EmailAddress    string
	EmailType       string
}

// CreateContact inserts the person, its email address & optional phone number together
func (user *User) CreateContact(fields ContactFields) (*Person, error) {
	exists, err := user.HasContactWithEmail(fields.EmailAddress)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateContact
	}

	person := Person{UserID: &user.ID}
	person.assign(fields)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&person).Error; err != nil {
			return err
		}
		return addContactInfo(tx, person.ID, fields)
	})
	if err != nil {
		return nil, errors.Wrap(err, "create contact")
	}

	return user.FindContact(person.ID)
}

// FindContact returns the user's contact with its phone numbers & email addresses
func (user *User) FindContact(id uint) (*Person, error) {
	person := Person{}

	err := db.Scopes(ownedBy(user.ID)).
		Preload("PhoneNumbers", orderedByID).
		Preload("EmailAddresses", orderedByID).
		First(&person, id).Error
	if err != nil {
		return nil, err
	}

	return &person, nil
}

// UpdateContact overwrites every scalar field & appends the given email address
// and phone number as new rows. Existing rows are left untouched.
func (user *User) UpdateContact(id uint, fields ContactFields) (*Person, error) {
	exists, err := user.HasContactWithEmail(fields.EmailAddress)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateContact
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		person := Person{}
		if err := tx.Scopes(ownedBy(user.ID)).First(&person, id).Error; err != nil {
			return err
		}

		person.assign(fields)
		if err := tx.Save(&person).Error; err != nil {
			return err
		}

		return addContactInfo(tx, person.ID, fields)
	})
	if err != nil {
		return nil, errors.Wrap(err, "update contact")
	}

	return user.FindContact(id)
}

// PatchContact applies only the fields present in 'data'. Blank first or last names are ignored.
func (user *User) PatchContact(id uint, data map[string]string) (*Person, error) {
	updates := map[string]interface{}{}
	for _, field := range patchableFields {
		value, ok := data[field]
		if !ok {
			continue
		}
		if value == "" && (field == "first_name" || field == "last_name") {
			continue
		}
		updates[field] = value
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		person := Person{}
		if err := tx.Scopes(ownedBy(user.ID)).First(&person, id).Error; err != nil {
			return err
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&person).Updates(updates).Error
	})
	if err != nil {
		return nil, errors.Wrap(err, "patch contact")
	}

	return user.FindContact(id)
}

// DeleteContact removes the user's contact along with its phone numbers & email addresses
func (user *User) DeleteContact(id uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		person := Person{}
		if err := tx.Scopes(ownedBy(user.ID)).First(&person, id).Error; err != nil {
			return err
		}

		if err := tx.Where("person_id = ?", person.ID).Delete(&PhoneNumber{}).Error; err != nil {
			return err
		}
		if err := tx.Where("person_id = ?", person.ID).Delete(&EmailAddress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&person).Error
	})

	return errors.Wrap(err, "delete contact")
}

// HasContactWithEmail reports whether any of the user's contacts has 'email' among its addresses
func (user *User) HasContactWithEmail(email string) (bool, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("contacts_people AS p").
		Join("contacts_email_addresses AS e ON e.person_id = p.id").
		Where(sq.Eq{"p.user_id": user.ID, "e.email_address": email}).
		ToSql()
	if err != nil {
		return false, errors.Wrap(err, "build duplicate contact query")
	}

	var count int64
	if err := db.Raw(query, args...).Scan(&count).Error; err != nil {
		return false, errors.Wrap(err, "duplicate contact query")
	}

	return count > 0, nil
}

// FetchContacts returns a page of the user's contacts ordered by id. A non-empty
// 'emailFilter' narrows the result to contacts with that address & always returns page 1.
func (user *User) FetchContacts(emailFilter string, page int) ([]Person, *Paging, error) {
	if emailFilter != "" {
		page = 1
	}

	filter := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("user_id = ?", user.ID)
		if emailFilter != "" {
			tx = tx.Where("id IN (?)",
				db.Model(&EmailAddress{}).Select("person_id").Where("email_address = ?", emailFilter))
		}
		return tx
	}

	var total int64
	if err := db.Model(&Person{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, nil, errors.Wrap(err, "count contacts")
	}

	paging := newPaging(int64(page), CONTACTS_PAGE_SIZE, total)
	if !paging.InRange() {
		return nil, nil, ErrPageNotFound
	}

	contacts := []Person{}
	err := db.Scopes(filter, orderedByID, paginate(page, CONTACTS_PAGE_SIZE)).
		Preload("PhoneNumbers", orderedByID).
		Preload("EmailAddresses", orderedByID).
		Find(&contacts).Error
	if err != nil {
		return nil, nil, errors.Wrap(err, "fetch contacts")
	}

	return contacts, paging, nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func (person *Person) assign(fields ContactFields) {
	person.FirstName = fields.FirstName
	person.MiddleName = fields.MiddleName
	person.LastName = fields.LastName
	person.Nickname = fields.Nickname
	person.Designation = fields.Designation
	person.Company = fields.Company
}

func addContactInfo(tx *gorm.DB, personID uint, fields ContactFields) error {
	emailType := fields.EmailType
	if emailType == "" {
		emailType = OTHER_TYPE
	}

	email := EmailAddress{PersonID: personID, Type: emailType, EmailAddress: fields.EmailAddress}
	if err := tx.Create(&email).Error; err != nil {
		return err
	}

	if fields.PhoneNumber == "" {
		return nil
	}

	phoneType := fields.PhoneNumberType
	if phoneType == "" {
		phoneType = OTHER_TYPE
	}

	phone := PhoneNumber{PersonID: personID, Type: phoneType, PhoneNumber: fields.PhoneNumber}
	return tx.Create(&phone).Error
}
