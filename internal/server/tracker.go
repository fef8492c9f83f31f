package server

import (
	"context"
	"errors"
	"time"
	"xray-tracker/internal/domain"
	"xray-tracker/internal/metrics"
	"xray-tracker/internal/service"
	"xray-tracker/internal/tier"
	"xray-tracker/internal/validation"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

type TrackerServer struct {
	classifier *tier.Classifier
	playerSvc  *service.PlayerService
	shadowSvc  *service.ShadowService
	xraySvc    *service.XRayService
	validator  *validation.Validator
}

func NewTrackerServer(
	classifier *tier.Classifier,
	playerSvc *service.PlayerService,
	shadowSvc *service.ShadowService,
	xraySvc *service.XRayService,
	validator *validation.Validator,
) *TrackerServer {
	return &TrackerServer{
		classifier: classifier,
		playerSvc:  playerSvc,
		shadowSvc:  shadowSvc,
		xraySvc:    xraySvc,
		validator:  validator,
	}
}

func (s *TrackerServer) ClassifyTier(_ context.Context, req *connect.Request[ClassifyTierRequest]) (*connect.Response[ClassifyTierResponse], error) {
	rank := s.classifier.Rank(req.Msg.Percentile)
	metrics.TierClassifications.WithLabelValues(string(rank.Tier.Name)).Inc()

	return connect.NewResponse(&ClassifyTierResponse{
		Tier:        rank.Tier,
		Division:    rank.Division,
		DisplayText: rank.DisplayText,
		Points:      s.classifier.PointContribution(req.Msg.Percentile),
	}), nil
}

func (s *TrackerServer) GetShadows(ctx context.Context, req *connect.Request[GetShadowsRequest]) (*connect.Response[domain.ShadowResult], error) {
	if err := s.validator.Validate(req.Msg); err != nil {
		return nil, toConnectError(ctx, err)
	}

	result, err := s.shadowSvc.GetShadows(ctx, req.Msg.Puuid, limitPtr(req.Msg.Limit))
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(result), nil
}

func (s *TrackerServer) GetShadowsByName(ctx context.Context, req *connect.Request[GetShadowsByNameRequest]) (*connect.Response[domain.ShadowResult], error) {
	if err := s.validator.Validate(req.Msg); err != nil {
		return nil, toConnectError(ctx, err)
	}

	player, err := s.playerSvc.GetPlayerByName(ctx, req.Msg.Name)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	result, err := s.shadowSvc.GetShadows(ctx, player.Puuid, limitPtr(req.Msg.Limit))
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(result), nil
}

func (s *TrackerServer) ImportShadows(ctx context.Context, req *connect.Request[ImportShadowsRequest]) (*connect.Response[ImportShadowsResponse], error) {
	if err := s.validator.Validate(req.Msg); err != nil {
		return nil, toConnectError(ctx, err)
	}

	edges := make([]domain.SimilarityEdge, len(req.Msg.Shadows))
	for i, e := range req.Msg.Shadows {
		edges[i] = e.toDomain(req.Msg.Puuid)
	}

	runID, err := s.shadowSvc.ImportShadows(ctx, req.Msg.Puuid, edges)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&ImportShadowsResponse{RunID: runID, Count: len(edges)}), nil
}

func (s *TrackerServer) GetPlayer(ctx context.Context, req *connect.Request[GetPlayerRequest]) (*connect.Response[PlayerResponse], error) {
	if err := s.validator.Validate(req.Msg); err != nil {
		return nil, toConnectError(ctx, err)
	}

	var (
		player *domain.Player
		err    error
	)
	if req.Msg.Puuid != "" {
		player, err = s.playerSvc.GetPlayerByPuuid(ctx, req.Msg.Puuid)
	} else {
		player, err = s.playerSvc.GetPlayerByName(ctx, req.Msg.Name)
	}
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	resp := toPlayerResponse(player)
	if t, ok := s.classifier.Table().Lookup(player.Tier); ok {
		resp.TierInfo = &t
	}
	return connect.NewResponse(resp), nil
}

func (s *TrackerServer) ImportPlayers(ctx context.Context, req *connect.Request[ImportPlayersRequest]) (*connect.Response[ImportPlayersResponse], error) {
	if err := s.validator.Validate(req.Msg); err != nil {
		return nil, toConnectError(ctx, err)
	}

	players := make([]domain.Player, len(req.Msg.Players))
	for i, p := range req.Msg.Players {
		players[i] = p.toDomain()
	}

	n, err := s.playerSvc.ImportPlayers(ctx, players)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&ImportPlayersResponse{Count: n}), nil
}

func (s *TrackerServer) SearchSuggestions(ctx context.Context, req *connect.Request[SearchSuggestionsRequest]) (*connect.Response[SearchSuggestionsResponse], error) {
	if err := s.validator.Validate(req.Msg); err != nil {
		return nil, toConnectError(ctx, err)
	}

	players, err := s.playerSvc.SearchSuggestions(ctx, req.Msg.Query)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&SearchSuggestionsResponse{Players: players}), nil
}

func (s *TrackerServer) EvaluateXRay(ctx context.Context, req *connect.Request[EvaluateXRayRequest]) (*connect.Response[domain.XRayReport], error) {
	start := time.Now()
	if err := s.validator.Validate(req.Msg); err != nil {
		return nil, toConnectError(ctx, err)
	}

	report, err := s.xraySvc.Evaluate(ctx, req.Msg.Puuid, req.Msg.Metrics)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	zerolog.Ctx(ctx).Debug().
		Int("metrics", len(req.Msg.Metrics)).
		Dur("duration", time.Since(start)).
		Msg("x-ray request served")
	return connect.NewResponse(report), nil
}

// toConnectError maps domain errors onto connect codes. Anything unrecognised
// is internal and logged with the request logger.
func toConnectError(ctx context.Context, err error) error {
	var code connect.Code
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		code = connect.CodeInvalidArgument
	case errors.Is(err, domain.ErrSubjectNotFound), errors.Is(err, domain.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		code = connect.CodeUnavailable
	default:
		code = connect.CodeInternal
	}

	log := zerolog.Ctx(ctx)
	if code == connect.CodeInternal || code == connect.CodeUnavailable {
		log.Error().Err(err).Str("code", code.String()).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("code", code.String()).Msg("request rejected")
	}
	return connect.NewError(code, err)
}
