// internal/middleware/auth.go
package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

// UserIDHeader is the metadata key carrying the calling user's id. The
// gateway in front of the service is responsible for authenticating it.
const UserIDHeader = "x-user-id"

// UserLookup resolves a caller id to a known user.
type UserLookup interface {
	User(id string) (models.User, bool)
}

// IdentityInterceptor resolves the caller of every non-public method
type IdentityInterceptor struct {
	users         UserLookup
	publicMethods map[string]bool
}

// NewIdentityInterceptor creates a new identity interceptor
func NewIdentityInterceptor(users UserLookup) *IdentityInterceptor {
	// Define which methods don't require a caller
	publicMethods := map[string]bool{
		"/workflow.v1.WorkflowService/GetTask":     true,
		"/workflow.v1.WorkflowService/ListTasks":   true,
		"/workflow.v1.WorkflowService/Leaderboard": true,
		"/grpc.health.v1.Health/Check":             true,
		"/grpc.health.v1.Health/Watch":             true,
	}

	return &IdentityInterceptor{
		users:         users,
		publicMethods: publicMethods,
	}
}

// Unary returns a unary server interceptor for caller resolution
func (a *IdentityInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		newCtx, err := a.identify(ctx)
		if err != nil {
			if a.publicMethods[info.FullMethod] {
				return handler(ctx, req)
			}
			return nil, err
		}
		return handler(newCtx, req)
	}
}

// identify reads the caller id from metadata and checks it against the directory
func (a *IdentityInterceptor) identify(ctx context.Context) (context.Context, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing metadata")
	}

	ids := md.Get(UserIDHeader)
	if len(ids) == 0 || strings.TrimSpace(ids[0]) == "" {
		return nil, status.Error(codes.Unauthenticated, "missing "+UserIDHeader+" header")
	}
	userID := strings.TrimSpace(ids[0])

	user, ok := a.users.User(userID)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unknown user")
	}

	ctx = context.WithValue(ctx, ContextKeyUserID, user.ID)
	ctx = context.WithValue(ctx, ContextKeyUserRole, user.Role)
	return ctx, nil
}
