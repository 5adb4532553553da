// directory/provider.go
package directory

import (
	"context"

	"github.com/smartnest/sentinel/model"
)

// Provider supplies the initial user list from an external identity source.
// The registry treats it as opaque: it is read once at startup to seed the
// in-memory store, and the store owns the records from then on.
type Provider interface {
	FetchUsers(ctx context.Context) ([]model.User, error)
}

// StaticProvider serves a fixed user list, for tests and local development.
type StaticProvider struct {
	Users []model.User
}

func NewStaticProvider(users []model.User) *StaticProvider {
	return &StaticProvider{Users: users}
}

func (p *StaticProvider) FetchUsers(ctx context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(p.Users))
	for i := range p.Users {
		out = append(out, *p.Users[i].Clone())
	}
	return out, nil
}
