package server

import (
	"net/http"

	"connectrpc.com/connect"
)

const (
	ServiceName = "xray.v1.XRayTracker"
	ServicePath = "/" + ServiceName + "/"

	ClassifyTierProcedure      = ServicePath + "ClassifyTier"
	GetShadowsProcedure        = ServicePath + "GetShadows"
	GetShadowsByNameProcedure  = ServicePath + "GetShadowsByName"
	ImportShadowsProcedure     = ServicePath + "ImportShadows"
	GetPlayerProcedure         = ServicePath + "GetPlayer"
	ImportPlayersProcedure     = ServicePath + "ImportPlayers"
	SearchSuggestionsProcedure = ServicePath + "SearchSuggestions"
	EvaluateXRayProcedure      = ServicePath + "EvaluateXRay"
)

// NewHandler routes every XRayTracker procedure, returning the path prefix to
// mount it on.
func NewHandler(s *TrackerServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ClassifyTierProcedure, connect.NewUnaryHandler(ClassifyTierProcedure, s.ClassifyTier, opts...))
	mux.Handle(GetShadowsProcedure, connect.NewUnaryHandler(GetShadowsProcedure, s.GetShadows, opts...))
	mux.Handle(GetShadowsByNameProcedure, connect.NewUnaryHandler(GetShadowsByNameProcedure, s.GetShadowsByName, opts...))
	mux.Handle(ImportShadowsProcedure, connect.NewUnaryHandler(ImportShadowsProcedure, s.ImportShadows, opts...))
	mux.Handle(GetPlayerProcedure, connect.NewUnaryHandler(GetPlayerProcedure, s.GetPlayer, opts...))
	mux.Handle(ImportPlayersProcedure, connect.NewUnaryHandler(ImportPlayersProcedure, s.ImportPlayers, opts...))
	mux.Handle(SearchSuggestionsProcedure, connect.NewUnaryHandler(SearchSuggestionsProcedure, s.SearchSuggestions, opts...))
	mux.Handle(EvaluateXRayProcedure, connect.NewUnaryHandler(EvaluateXRayProcedure, s.EvaluateXRay, opts...))

	return ServicePath, mux
}
