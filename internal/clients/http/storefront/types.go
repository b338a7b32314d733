package storefront

import (
	"encoding/json"
	"time"
)

// User is the profile record returned by the auth endpoints.
type User struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Role      string `json:"role,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	PushToken string `json:"pushToken,omitempty"`
	CNIC      string `json:"cnic,omitempty"`
}

// UnmarshalJSON accepts either "id" or the document-store "_id".
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	var aux struct {
		alias
		DocumentID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User(aux.alias)
	if u.ID == "" {
		u.ID = aux.DocumentID
	}
	return nil
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register payload.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	CNIC     string `json:"cnic,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// AuthResponse carries the bearer token and the profile.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type userEnvelope struct {
	User *User `json:"user"`
}

// ProfilePatch is the PATCH /auth/me payload; nil fields are not sent.
type ProfilePatch struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
	PushToken *string `json:"pushToken,omitempty"`
}

// PasswordChange is the change-password payload.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ResetRequestResult acknowledges a reset request. Token is only populated by non-production servers.
type ResetRequestResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// ResetConfirmResult acknowledges a completed reset.
type ResetConfirmResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Product is a catalog record.
type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	SizeLiters  float64  `json:"sizeLiters"`
	Price       float64  `json:"price"`
	Active      bool     `json:"active"`
	Images      []string `json:"images,omitempty"`
	Category    string   `json:"category,omitempty"`
}

// Deal is a public promotion.
type Deal struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

// OrderLine is one requested line of a new order.
type OrderLine struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest is the POST /orders payload.
type CreateOrderRequest struct {
	Items         []OrderLine `json:"items"`
	Address       string      `json:"address"`
	Notes         string      `json:"notes"`
	PaymentMethod string      `json:"paymentMethod"`
}

// OrderProduct is either a populated product object or a bare product id on the wire.
type OrderProduct struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON accepts a string id or an object.
func (p *OrderProduct) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*p = OrderProduct{ID: id}
		return nil
	}
	type alias OrderProduct
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*p = OrderProduct(obj)
	return nil
}

// OrderItem is a stored order line.
type OrderItem struct {
	Product   OrderProduct `json:"product"`
	Quantity  int          `json:"quantity"`
	UnitPrice float64      `json:"unitPrice"`
}

// Order is an order record.
type Order struct {
	ID            string      `json:"_id"`
	Customer      string      `json:"customer,omitempty"`
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"totalAmount"`
	Status        string      `json:"status"`
	Address       string      `json:"address,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	PaymentMethod string      `json:"paymentMethod,omitempty"`
	PaymentStatus string      `json:"paymentStatus,omitempty"`
	CreatedAt     *time.Time  `json:"createdAt,omitempty"`
	DeliveredAt   *time.Time  `json:"deliveredAt,omitempty"`
	ETA           *time.Time  `json:"eta,omitempty"`
}

// CreateOrderResponse is the created order plus the payment client secret for card orders.
// Servers either return the order flat or nested under "order".
type CreateOrderResponse struct {
	Order
	ClientSecret string `json:"clientSecret,omitempty"`
	Nested       *Order `json:"order,omitempty"`
}

// Placed returns the order regardless of which shape the server used.
func (r *CreateOrderResponse) Placed() Order {
	if r.Nested != nil && r.Nested.ID != "" {
		return *r.Nested
	}
	return r.Order
}

// CommentAuthor identifies who posted a ticket comment.
type CommentAuthor struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name,omitempty"`
}

// TicketComment is one message on a support ticket.
type TicketComment struct {
	ID        string         `json:"_id,omitempty"`
	Message   string         `json:"message"`
	Author    *CommentAuthor `json:"author,omitempty"`
	CreatedAt *time.Time     `json:"createdAt,omitempty"`
}

// Ticket is a customer support ticket.
type Ticket struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	Comments    []TicketComment `json:"comments,omitempty"`
}

// NewTicket is the POST /customer-support payload.
type NewTicket struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Health is the GET /health payload.
type Health struct {
	Status string `json:"status"`
}

// Link is a labelled URL on the about page.
type Link struct {
	Label string `json:"label,omitempty"`
	URL   string `json:"url"`
}

// About is the GET /about payload.
type About struct {
	MissionStatement string `json:"missionStatement,omitempty"`
	VisionStatement  string `json:"visionStatement,omitempty"`
	SocialLinks      []Link `json:"socialLinks,omitempty"`
	UsefulLinks      []Link `json:"usefulLinks,omitempty"`
}

// SiteSettings is the GET /site-settings payload.
type SiteSettings struct {
	SiteName     string `json:"siteName,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	Address      string `json:"address,omitempty"`
}
