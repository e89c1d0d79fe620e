package utils

import "context"

type contextKey string

const (
	viewerKey          contextKey = "viewer"
	internalRequestKey contextKey = "internal_request"
)

const (
	RoleCustomer = "customer"
	RoleFarmer   = "farmer"
)

// Viewer is who is making the request, as asserted by the identity
// provider's token. Anonymous requests get the customer role.
type Viewer struct {
	Subject  string
	Role     string
	SellerID string
	Name     string
}

func (v Viewer) IsFarmer() bool {
	return v.Role == RoleFarmer && v.SellerID != ""
}

func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

// ViewerFrom returns the request viewer, defaulting to an anonymous
// customer.
func ViewerFrom(ctx context.Context) Viewer {
	v, ok := ctx.Value(viewerKey).(Viewer)
	if !ok || v.Role == "" {
		v.Role = RoleCustomer
	}
	return v
}

func WithInternalRequest(ctx context.Context) context.Context {
	return context.WithValue(ctx, internalRequestKey, true)
}

func IsInternalRequest(ctx context.Context) bool {
	v, _ := ctx.Value(internalRequestKey).(bool)
	return v
}
