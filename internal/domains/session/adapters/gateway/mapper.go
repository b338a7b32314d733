package gateway

import (
	"github.com/Apurer/go-water-storefront/internal/clients/http/storefront"
	"github.com/Apurer/go-water-storefront/internal/domains/session/domain"
)

// ToUser converts the wire profile into the session's cached user.
func ToUser(u *storefront.User) *domain.User {
	if u == nil {
		return nil
	}
	return &domain.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      u.Role,
		Avatar:    u.Avatar,
		PushToken: u.PushToken,
		CNIC:      u.CNIC,
	}
}

func toRegistration(reg domain.Registration) storefront.Registration {
	return storefront.Registration{
		Name:     reg.Name,
		Email:    reg.Email,
		Password: reg.Password,
		CNIC:     reg.CNIC,
		Phone:    reg.Phone,
	}
}

func toPatch(p domain.ProfilePatch) storefront.ProfilePatch {
	return storefront.ProfilePatch{
		Name:      p.Name,
		Phone:     p.Phone,
		Address:   p.Address,
		Avatar:    p.Avatar,
		PushToken: p.PushToken,
	}
}
