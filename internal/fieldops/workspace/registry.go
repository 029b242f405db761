package workspace

// registry is the canonical provider directory for one build. Providers
// embedded in order rows are registered first, then the standalone roster;
// the first record seen for an identity wins and later records only fill
// fields the first one left empty.
type registry struct {
	byID  map[int64]*Provider
	order []int64
}

func newRegistry(orders []Order, roster []Provider) *registry {
	reg := &registry{byID: make(map[int64]*Provider)}
	for _, order := range orders {
		if order.Provider != nil {
			reg.add(*order.Provider)
		}
	}
	for _, provider := range roster {
		reg.add(provider)
	}
	return reg
}

func (r *registry) add(provider Provider) {
	existing, ok := r.byID[provider.ID]
	if !ok {
		clone := provider
		r.byID[provider.ID] = &clone
		r.order = append(r.order, provider.ID)
		return
	}
	mergeProvider(existing, provider)
}

// mergeProvider fills gaps in dst from src without overwriting anything
// dst already carries.
func mergeProvider(dst *Provider, src Provider) {
	if dst.UserID == nil {
		dst.UserID = src.UserID
	}
	if dst.Email == "" && src.Email != "" {
		dst.Email = src.Email
		dst.AvatarURL = avatarURL(src.Email)
	}
	if dst.Phone == "" {
		dst.Phone = src.Phone
	}
	if len(dst.Specialties) == 0 {
		dst.Specialties = src.Specialties
	}
	if dst.Rating == nil {
		dst.Rating = src.Rating
	}
	if dst.LastCheckInAt == nil {
		dst.LastCheckInAt = src.LastCheckInAt
	}
	if dst.Location == nil {
		dst.Location = src.Location
	}
	if len(dst.Metadata) == 0 {
		dst.Metadata = src.Metadata
	}
}

// resolve returns the canonical provider for an order. The order's embedded
// provider takes precedence, backfilled from the registry record sharing
// the same identity.
func (r *registry) resolve(order Order) *Provider {
	if order.Provider != nil {
		return r.byID[order.Provider.ID]
	}
	if order.ProviderID != nil {
		return r.byID[*order.ProviderID]
	}
	return nil
}

// all returns providers in first-seen order.
func (r *registry) all() []Provider {
	out := make([]Provider, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out
}

// ownedBy returns providers whose linked platform user matches userID,
// in first-seen order.
func (r *registry) ownedBy(userID int64) []Provider {
	out := make([]Provider, 0, 1)
	for _, id := range r.order {
		provider := r.byID[id]
		if provider.UserID != nil && *provider.UserID == userID {
			out = append(out, *provider)
		}
	}
	return out
}
