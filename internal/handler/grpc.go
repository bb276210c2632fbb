package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/MikhailRaia/shortlink/internal/proto"
	"github.com/MikhailRaia/shortlink/internal/service"
	"github.com/MikhailRaia/shortlink/internal/storage"
)

type ShortenerGRPCServer struct {
	proto.UnimplementedShortenerServer
	urlService URLService
}

func NewShortenerGRPCServer(urlService URLService) *ShortenerGRPCServer {
	return &ShortenerGRPCServer{
		urlService: urlService,
	}
}

func (s *ShortenerGRPCServer) ShortenURL(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	shortURL, err := s.urlService.ShortenURL(ctx, req.GetValue())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyURL):
			return nil, status.Error(codes.InvalidArgument, "url is required")
		case errors.Is(err, storage.ErrGenerationExhausted):
			return nil, status.Error(codes.ResourceExhausted, "could not allocate a short URL")
		default:
			return nil, status.Errorf(codes.Internal, "failed to shorten URL: %v", err)
		}
	}

	return wrapperspb.String(shortURL), nil
}

func (s *ShortenerGRPCServer) ExpandURL(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	originalURL, err := s.urlService.GetOriginalURL(ctx, req.GetValue())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "ID not found")
		}
		return nil, status.Errorf(codes.Internal, "failed to get URL: %v", err)
	}

	return wrapperspb.String(originalURL), nil
}
