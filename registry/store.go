// registry/store.go
package registry

import (
	"sort"
	"strings"
	"sync"
	"time"

	sentinel_errors "github.com/smartnest/sentinel/errors"
	"github.com/smartnest/sentinel/model"
)

// Store is the owned, in-memory registry of users, roles, device groups and
// grant templates. All access goes through the mutex; reads hand out clones
// so callers never alias registry state. It replaces ambient global state so
// the grant issuer, sweeper, and review calculator can be exercised without
// a server attached.
type Store struct {
	mu           sync.RWMutex
	users        map[string]*model.User
	roles        map[string]*model.Role
	deviceGroups map[string]*model.DeviceGroup
	templates    map[string]*model.AccessTemplate
	history      []model.ReviewHistoryEntry
}

// NewStore creates an empty registry pre-seeded with the system roles.
func NewStore() *Store {
	s := &Store{
		users:        make(map[string]*model.User),
		roles:        make(map[string]*model.Role),
		deviceGroups: make(map[string]*model.DeviceGroup),
		templates:    make(map[string]*model.AccessTemplate),
	}
	for _, role := range model.SystemRoles() {
		r := role
		s.roles[r.ID] = &r
	}
	return s
}

// Users

func (s *Store) CreateUser(user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return sentinel_errors.ErrUserConflict
	}
	s.users[user.ID] = user.Clone()
	return nil
}

func (s *Store) GetUser(userID string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, sentinel_errors.ErrUserNotFound
	}
	return user.Clone(), nil
}

// UpdateUser replaces the stored record wholesale.
func (s *Store) UpdateUser(user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return sentinel_errors.ErrUserNotFound
	}
	s.users[user.ID] = user.Clone()
	return nil
}

// MutateUser applies fn to the stored record under the write lock, so a
// read-modify-write is atomic with respect to concurrent callers. fn gets
// the live record; an error from fn leaves the record untouched only if fn
// itself made no changes before failing.
func (s *Store) MutateUser(userID string, fn func(*model.User) error) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, sentinel_errors.ErrUserNotFound
	}
	if err := fn(user); err != nil {
		return nil, err
	}
	return user.Clone(), nil
}

func (s *Store) DeleteUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return sentinel_errors.ErrUserNotFound
	}
	delete(s.users, userID)
	return nil
}

// ListUsers returns every user ordered by creation time, newest first.
func (s *Store) ListUsers() []*model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u.Clone())
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users
}

// SearchUsers filters users by the given criteria. Name and email match on
// case-insensitive substring; role and status match exactly.
func (s *Store) SearchUsers(criteria model.UserSearchCriteria) []*model.User {
	matched := make([]*model.User, 0)
	for _, u := range s.ListUsers() {
		if criteria.Name != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(criteria.Name)) {
			continue
		}
		if criteria.Email != "" && !strings.Contains(strings.ToLower(u.Email), strings.ToLower(criteria.Email)) {
			continue
		}
		if criteria.RoleID != "" && u.RoleID != criteria.RoleID {
			continue
		}
		if criteria.Status != "" && u.Status != criteria.Status {
			continue
		}
		matched = append(matched, u)
	}
	if criteria.Offset > 0 {
		if criteria.Offset >= len(matched) {
			return []*model.User{}
		}
		matched = matched[criteria.Offset:]
	}
	if criteria.Limit > 0 && criteria.Limit < len(matched) {
		matched = matched[:criteria.Limit]
	}
	return matched
}

// Roles

func (s *Store) CreateRole(role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.roles[role.ID]; exists {
		return sentinel_errors.ErrRoleConflict
	}
	r := role
	r.Permissions = role.Permissions.Clone()
	s.roles[r.ID] = &r
	return nil
}

func (s *Store) GetRole(roleID string) (*model.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.roles[roleID]
	if !ok {
		return nil, sentinel_errors.ErrRoleNotFound
	}
	r := *role
	r.Permissions = role.Permissions.Clone()
	return &r, nil
}

func (s *Store) UpdateRole(role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.roles[role.ID]
	if !ok {
		return sentinel_errors.ErrRoleNotFound
	}
	if existing.System {
		return sentinel_errors.ErrSystemRoleImmutable
	}
	r := role
	r.System = false
	r.Permissions = role.Permissions.Clone()
	s.roles[r.ID] = &r
	return nil
}

func (s *Store) DeleteRole(roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	role, ok := s.roles[roleID]
	if !ok {
		return sentinel_errors.ErrRoleNotFound
	}
	if role.System {
		return sentinel_errors.ErrSystemRoleImmutable
	}
	delete(s.roles, roleID)
	return nil
}

func (s *Store) ListRoles() []*model.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roles := make([]*model.Role, 0, len(s.roles))
	for _, role := range s.roles {
		r := *role
		r.Permissions = role.Permissions.Clone()
		roles = append(roles, &r)
	}
	sort.Slice(roles, func(i, j int) bool {
		if roles[i].System != roles[j].System {
			return roles[i].System
		}
		return roles[i].ID < roles[j].ID
	})
	return roles
}

// Device groups

func (s *Store) CreateDeviceGroup(group model.DeviceGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.deviceGroups[group.ID]; exists {
		return sentinel_errors.ErrDeviceGroupConflict
	}
	g := group
	s.deviceGroups[g.ID] = &g
	return nil
}

func (s *Store) GetDeviceGroup(groupID string) (*model.DeviceGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.deviceGroups[groupID]
	if !ok {
		return nil, sentinel_errors.ErrDeviceGroupNotFound
	}
	g := *group
	return &g, nil
}

func (s *Store) UpdateDeviceGroup(group model.DeviceGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deviceGroups[group.ID]; !ok {
		return sentinel_errors.ErrDeviceGroupNotFound
	}
	g := group
	s.deviceGroups[g.ID] = &g
	return nil
}

// DeleteDeviceGroup removes the group and detaches it from every user that
// references it. Groups are referenced, never owned, so no user is deleted.
func (s *Store) DeleteDeviceGroup(groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deviceGroups[groupID]; !ok {
		return sentinel_errors.ErrDeviceGroupNotFound
	}
	delete(s.deviceGroups, groupID)
	for _, u := range s.users {
		u.DeviceGroups = removeRef(u.DeviceGroups, groupID)
		if u.TemporaryAccess != nil {
			u.TemporaryAccess.GrantedDeviceGroups = removeRef(u.TemporaryAccess.GrantedDeviceGroups, groupID)
		}
	}
	return nil
}

func (s *Store) ListDeviceGroups() []*model.DeviceGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]*model.DeviceGroup, 0, len(s.deviceGroups))
	for _, group := range s.deviceGroups {
		g := *group
		groups = append(groups, &g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups
}

func removeRef(refs []string, id string) []string {
	out := refs[:0]
	for _, ref := range refs {
		if ref != id {
			out = append(out, ref)
		}
	}
	return out
}

// Access templates

func (s *Store) CreateTemplate(template model.AccessTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.templates[template.Name]; exists {
		return sentinel_errors.ErrTemplateConflict
	}
	t := template
	t.Permissions = template.Permissions.Clone()
	s.templates[t.Name] = &t
	return nil
}

func (s *Store) GetTemplate(name string) (*model.AccessTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	template, ok := s.templates[name]
	if !ok {
		return nil, sentinel_errors.ErrTemplateNotFound
	}
	t := *template
	t.Permissions = template.Permissions.Clone()
	return &t, nil
}

func (s *Store) DeleteTemplate(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[name]; !ok {
		return sentinel_errors.ErrTemplateNotFound
	}
	delete(s.templates, name)
	return nil
}

func (s *Store) ListTemplates() []*model.AccessTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	templates := make([]*model.AccessTemplate, 0, len(s.templates))
	for _, template := range s.templates {
		t := *template
		t.Permissions = template.Permissions.Clone()
		templates = append(templates, &t)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].Name < templates[j].Name })
	return templates
}

// Review history

func (s *Store) AppendReviewHistory(entry model.ReviewHistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, entry)
}

// ListReviewHistory returns entries newest first.
func (s *Store) ListReviewHistory() []model.ReviewHistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ReviewHistoryEntry, len(s.history))
	copy(out, s.history)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// Seed loads an initial user list from the directory provider result,
// skipping entries that collide with already-present IDs.
func (s *Store) Seed(users []model.User, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded := 0
	for i := range users {
		u := users[i]
		if _, exists := s.users[u.ID]; exists {
			continue
		}
		if u.CreatedAt.IsZero() {
			u.CreatedAt = now
		}
		if u.UpdatedAt.IsZero() {
			u.UpdatedAt = now
		}
		s.users[u.ID] = u.Clone()
		loaded++
	}
	return loaded
}
