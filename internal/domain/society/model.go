// Package society holds the apartment ledger aggregate: one document per
// apartment carrying the full resident roster, invite codes, financial
// records and communication lists. Every mutation rewrites the whole
// document through a Store.
package society

import "time"

const (
	RoleSecretary = "secretary"
	RoleResident  = "resident"

	// SecretaryFlat is the sentinel flat label assigned to the registering
	// secretary instead of a real flat number.
	SecretaryFlat = "Secretary"
)

// Maintenance record types.
const (
	PaymentRegular      = "regular"
	PaymentExtra        = "extra"
	PaymentSelfReported = "self-reported"
)

// Announcement priorities.
const (
	PriorityNormal    = "normal"
	PriorityImportant = "important"
	PriorityUrgent    = "urgent"
)

// Apartment is the aggregate root. All sub-lists are append-only and kept in
// insertion order; insertion order is chronological order.
type Apartment struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	SecretaryPhone     string    `json:"secretaryPhone"`
	SecretaryEmail     string    `json:"secretaryEmail"`
	DefaultMaintenance float64   `json:"defaultMaintenance"`
	CreatedAt          time.Time `json:"createdAt"`

	Residents          []Resident          `json:"residents"`
	Expenses           []Expense           `json:"expenses"`
	MaintenanceRecords []MaintenanceRecord `json:"maintenanceRecords"`
	Contributions      []Contribution      `json:"contributions"`
	Announcements      []Announcement      `json:"announcements"`
	InviteCodes        []InviteCode        `json:"inviteCodes"`
	ChatMessages       []ChatMessage       `json:"chatMessages"`
	PaymentInfo        *PaymentInfo        `json:"paymentInfo"`

	// Revision is managed by the Store and checked on save so that two
	// sessions rewriting the same document cannot silently drop each
	// other's changes.
	Revision int64 `json:"-"`
}

type Resident struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	Flat          string    `json:"flat"`
	FamilyMembers int       `json:"familyMembers"`
	Role          string    `json:"role"`
	Avatar        string    `json:"avatar,omitempty"`
	ApartmentID   string    `json:"apartmentId"`
	CreatedAt     time.Time `json:"createdAt"`
}

// InviteCode is a single-use join token. It transitions once from unused to
// used and is never revoked or reused.
type InviteCode struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	CreatedBy string     `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
	Used      bool       `json:"used"`
	UsedBy    string     `json:"usedBy,omitempty"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
}

// MaintenanceRecord captures one payment. ResidentName is a snapshot taken at
// record time and is kept even if the resident is later renamed.
type MaintenanceRecord struct {
	ID           string    `json:"id"`
	ResidentID   string    `json:"residentId"`
	ResidentName string    `json:"residentName"`
	Amount       float64   `json:"amount"`
	Reference    string    `json:"reference,omitempty"`
	Type         string    `json:"type"`
	RecordedBy   string    `json:"recordedBy"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Contribution struct {
	ID           string    `json:"id"`
	ResidentID   string    `json:"residentId"`
	ResidentName string    `json:"residentName"`
	Amount       float64   `json:"amount"`
	Details      string    `json:"details"`
	RecordedBy   string    `json:"recordedBy"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Expense is a shared cost split equally across all non-secretary residents.
type Expense struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Details     string    `json:"details,omitempty"`
	AddedBy     string    `json:"addedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Announcement struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Priority   string    `json:"priority"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	ReceiverID string    `json:"receiverId"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PaymentInfo holds the secretary's collection details. At most one per
// apartment; saves overwrite the whole value.
type PaymentInfo struct {
	BankName      string    `json:"bankName,omitempty"`
	AccountNumber string    `json:"accountNumber,omitempty"`
	IFSC          string    `json:"ifsc,omitempty"`
	UPI           string    `json:"upi,omitempty"`
	QRPayload     string    `json:"qrPayload,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (a *Apartment) ResidentByID(id string) *Resident {
	for i := range a.Residents {
		if a.Residents[i].ID == id {
			return &a.Residents[i]
		}
	}
	return nil
}

func (a *Apartment) ResidentByPhone(phone string) *Resident {
	for i := range a.Residents {
		if a.Residents[i].Phone == phone {
			return &a.Residents[i]
		}
	}
	return nil
}

// NonSecretaryResidents returns the residents that participate in expense
// splitting, in join order.
func (a *Apartment) NonSecretaryResidents() []Resident {
	result := make([]Resident, 0, len(a.Residents))
	for _, r := range a.Residents {
		if r.Role != RoleSecretary {
			result = append(result, r)
		}
	}
	return result
}

// UnusedInvite returns the invite matching code if it has not been consumed.
func (a *Apartment) UnusedInvite(code string) *InviteCode {
	for i := range a.InviteCodes {
		if a.InviteCodes[i].Code == code && !a.InviteCodes[i].Used {
			return &a.InviteCodes[i]
		}
	}
	return nil
}

func (a *Apartment) HasInviteCode(code string) bool {
	for i := range a.InviteCodes {
		if a.InviteCodes[i].Code == code {
			return true
		}
	}
	return false
}

func (a *Apartment) MaintenanceRecordByID(id string) *MaintenanceRecord {
	for i := range a.MaintenanceRecords {
		if a.MaintenanceRecords[i].ID == id {
			return &a.MaintenanceRecords[i]
		}
	}
	return nil
}
