package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor logs one line per unary call.
type LoggingInterceptor struct {
	log zerolog.Logger
}

func NewLoggingInterceptor(log zerolog.Logger) *LoggingInterceptor {
	return &LoggingInterceptor{log: log.With().Str("component", "grpc").Logger()}
}

func (l *LoggingInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		var evt *zerolog.Event
		switch code {
		case codes.OK:
			evt = l.log.Debug()
		case codes.Internal, codes.Unknown, codes.DataLoss, codes.Unavailable:
			evt = l.log.Error().Err(err)
		default:
			evt = l.log.Info().Err(err)
		}

		userID, _ := GetUserIDFromContext(ctx)
		evt.Str("method", info.FullMethod).
			Str("code", code.String()).
			Str("user_id", userID).
			Str("peer", GetIPAddressFromContext(ctx)).
			Dur("duration", time.Since(start)).
			Msg("grpc call")
		return resp, err
	}
}
