package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docucortex-be/internal/config"
	"docucortex-be/internal/constant"
	"docucortex-be/internal/dto"
	"docucortex-be/internal/entity"
	"docucortex-be/internal/pkg/logger"
	"docucortex-be/internal/repository/contract"
	"docucortex-be/pkg/appcmd"
	"docucortex-be/pkg/enrich"
	"docucortex-be/pkg/events"
	"docucortex-be/pkg/gateway"
	"docucortex-be/pkg/intent"
	"docucortex-be/pkg/session"
	"docucortex-be/pkg/websearch"

	"github.com/google/uuid"
)

type IAIService interface {
	ProcessQuery(ctx context.Context, userID *uuid.UUID, request *dto.ChatRequest) (*dto.ChatResponse, error)
	GetConversations(ctx context.Context, sessionID string, limit int) ([]*dto.ConversationResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetStatistics(ctx context.Context) (*dto.StatisticsResponse, error)
}

// EventPublisher is the durable event bus surface the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Broadcaster pushes turn results to connected websocket clients.
type Broadcaster interface {
	BroadcastToSession(sessionID string, payload interface{})
}

// aiService runs one query through classification, optional enrichment,
// generation with fallback and persistence.
type aiService struct {
	classifier       *intent.Classifier
	sessions         *session.Manager
	enricher         *enrich.Enricher
	dispatcher       *gateway.Dispatcher
	gateways         map[string]gateway.Gateway
	runtime          *config.Runtime
	searcher         websearch.Searcher
	commander        *appcmd.Commander
	conversationRepo contract.ConversationRepository
	publisherService IPublisherService
	statsService     IStatsService
	eventPublisher   EventPublisher
	broadcaster      Broadcaster
	logger           logger.ILogger
}

func NewAIService(
	classifier *intent.Classifier,
	sessions *session.Manager,
	enricher *enrich.Enricher,
	dispatcher *gateway.Dispatcher,
	gateways map[string]gateway.Gateway,
	runtime *config.Runtime,
	searcher websearch.Searcher,
	commander *appcmd.Commander,
	conversationRepo contract.ConversationRepository,
	publisherService IPublisherService,
	statsService IStatsService,
	eventPublisher EventPublisher,
	broadcaster Broadcaster,
	log logger.ILogger,
) IAIService {
	return &aiService{
		classifier:       classifier,
		sessions:         sessions,
		enricher:         enricher,
		dispatcher:       dispatcher,
		gateways:         gateways,
		runtime:          runtime,
		searcher:         searcher,
		commander:        commander,
		conversationRepo: conversationRepo,
		publisherService: publisherService,
		statsService:     statsService,
		eventPublisher:   eventPublisher,
		broadcaster:      broadcaster,
		logger:           log,
	}
}

// ProcessQuery handles one chat turn end to end. Unexpected faults are
// absorbed into a failure envelope so the caller always gets an answer.
func (s *aiService) ProcessQuery(ctx context.Context, userID *uuid.UUID, request *dto.ChatRequest) (response *dto.ChatResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("AI", "Panic while processing query", map[string]interface{}{
				"session_id": request.SessionID,
				"panic":      fmt.Sprintf("%v", r),
			})
			response = &dto.ChatResponse{
				Success:    false,
				Response:   "Une erreur interne est survenue. Veuillez réessayer.",
				Confidence: 0,
				AiProvider: constant.ProviderError,
				Error:      fmt.Sprintf("%v", r),
			}
			err = nil
		}
	}()

	s.trace(request.SessionID, constant.StateReceived, nil)
	snap := s.runtime.Snapshot()

	classification := s.classifier.Classify(ctx, request.SessionID, request.Message)
	s.trace(request.SessionID, constant.StateClassified, map[string]interface{}{
		"intent":     classification.Intent,
		"confidence": classification.Confidence,
	})
	intentCtx := &dto.IntentContext{
		Intent:      classification.Intent,
		Description: classification.Description,
		Reasoning:   classification.Reasoning,
	}

	// Shortcut intents never reach a generation backend.
	switch classification.Intent {
	case constant.IntentWebSearch:
		return s.handleWebSearch(ctx, userID, request, classification, intentCtx)
	case constant.IntentAppCommand:
		return s.handleAppCommand(ctx, userID, request, classification, intentCtx)
	}

	// Optional document grounding.
	prompt := request.Message
	var sources []enrich.Source
	enriched := false
	if needsDocumentSearch(request.Message) {
		result, enrichErr := s.enricher.Enrich(ctx, request.Message)
		if enrichErr == nil && result != nil {
			prompt = result.Text
			sources = result.Sources
			enriched = len(result.Sources) > 0
		}
		if enriched {
			s.classifier.Memory().MarkSearchContext(request.SessionID, true)
		}
	}
	if enriched {
		s.trace(request.SessionID, constant.StateSearchEnriched, map[string]interface{}{"sources": len(sources)})
	} else {
		s.trace(request.SessionID, constant.StatePlain, nil)
	}

	// Generation with fallback.
	history := s.sessions.History(request.SessionID)
	messages := make([]gateway.Message, 0, len(history)+1)
	for _, turn := range history {
		messages = append(messages, gateway.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, gateway.Message{Role: constant.ChatRoleUser, Content: prompt})

	genReq := &gateway.Request{
		SessionID:    request.SessionID,
		Messages:     messages,
		SystemPrompt: snap.SystemPrompt,
		Temperature:  snap.Temperature,
		MaxTokens:    snap.MaxTokens,
	}

	s.trace(request.SessionID, constant.StateGenerating, nil)
	result, attempts, dispatchErr := s.dispatcher.Dispatch(ctx, genReq, s.buildProviders(snap), "", gateway.Policy{
		MaxAttempts: snap.MaxAttempts,
		AutoSwitch:  snap.AutoSwitch,
		Confidence: gateway.ConfidenceDefaults{
			Greeting: snap.GreetingConfidence,
			Help:     snap.HelpConfidence,
			Generic:  snap.GenericConfidence,
		},
	})
	if dispatchErr != nil {
		// Caller went away: no record, no response.
		s.logger.Warn("AI", "Turn abandoned", map[string]interface{}{
			"session_id": request.SessionID,
			"attempts":   len(attempts),
			"error":      dispatchErr.Error(),
		})
		return nil, dispatchErr
	}

	response = &dto.ChatResponse{
		Success:    true,
		Response:   result.Response,
		Confidence: result.Confidence,
		AiProvider: result.Provider,
		Sources:    toSourceResponses(sources),
		Context:    intentCtx,
	}
	if result.Confidence < 0.5 {
		response.Suggestions = buildSuggestions(classification.Intent, len(sources) > 0)
	}

	s.sessions.Append(request.SessionID, session.Exchange{Role: constant.ChatRoleUser, Content: request.Message})
	s.sessions.Append(request.SessionID, session.Exchange{Role: constant.ChatRoleAssistant, Content: result.Response})

	s.record(ctx, userID, request, classification.Intent, response, sources)
	s.notify(ctx, request.SessionID, classification.Intent, response, enriched)
	s.trace(request.SessionID, constant.StateReturned, map[string]interface{}{"provider": response.AiProvider})

	return response, nil
}

// trace logs one orchestrator state transition at debug level.
func (s *aiService) trace(sessionID, state string, details map[string]interface{}) {
	if details == nil {
		details = map[string]interface{}{}
	}
	details["session_id"] = sessionID
	details["state"] = state
	s.logger.Debug("AI", "Query state", details)
}

func (s *aiService) handleWebSearch(ctx context.Context, userID *uuid.UUID, request *dto.ChatRequest, classification *intent.ClassificationResult, intentCtx *dto.IntentContext) (*dto.ChatResponse, error) {
	s.trace(request.SessionID, constant.StateShortcutDispatched, map[string]interface{}{"intent": classification.Intent})
	results, err := s.searcher.Search(ctx, request.Message)

	var text string
	switch {
	case err != nil:
		s.logger.Warn("AI", "Web search failed", map[string]interface{}{"error": err.Error()})
		text = "La recherche web est momentanément indisponible. Veuillez réessayer."
	case len(results) == 0:
		text = fmt.Sprintf("Je n'ai pas trouvé de résultat web pour %q.", request.Message)
	default:
		text = "Voici ce que j'ai trouvé sur le web :\n\n"
		for i, r := range results {
			text += fmt.Sprintf("%d. %s\n", i+1, r.Snippet)
		}
	}

	response := &dto.ChatResponse{
		Success:    true,
		Response:   text,
		Confidence: classification.Confidence,
		AiProvider: constant.ProviderWebSearch,
		Context:    intentCtx,
	}

	s.sessions.Append(request.SessionID, session.Exchange{Role: constant.ChatRoleUser, Content: request.Message})
	s.sessions.Append(request.SessionID, session.Exchange{Role: constant.ChatRoleAssistant, Content: text})
	s.record(ctx, userID, request, classification.Intent, response, nil)
	s.notify(ctx, request.SessionID, classification.Intent, response, false)

	return response, nil
}

func (s *aiService) handleAppCommand(ctx context.Context, userID *uuid.UUID, request *dto.ChatRequest, classification *intent.ClassificationResult, intentCtx *dto.IntentContext) (*dto.ChatResponse, error) {
	s.trace(request.SessionID, constant.StateShortcutDispatched, map[string]interface{}{"intent": classification.Intent})
	cmdResult, err := s.commander.NaturalLanguageSearch(ctx, request.Message)

	var text string
	if err != nil {
		s.logger.Warn("AI", "App command failed", map[string]interface{}{"error": err.Error()})
		text = "Je n'ai pas pu exécuter cette commande. Veuillez réessayer."
	} else {
		text = cmdResult.Response
	}

	response := &dto.ChatResponse{
		Success:    true,
		Response:   text,
		Confidence: classification.Confidence,
		AiProvider: constant.ProviderAppCommand,
		Context:    intentCtx,
	}

	s.sessions.Append(request.SessionID, session.Exchange{Role: constant.ChatRoleUser, Content: request.Message})
	s.sessions.Append(request.SessionID, session.Exchange{Role: constant.ChatRoleAssistant, Content: text})
	s.record(ctx, userID, request, classification.Intent, response, nil)
	s.notify(ctx, request.SessionID, classification.Intent, response, false)

	return response, nil
}

// buildProviders projects the runtime snapshot onto the registered gateways.
func (s *aiService) buildProviders(snap *config.RuntimeSnapshot) []gateway.Provider {
	providers := make([]gateway.Provider, 0, len(s.gateways))
	for name, gw := range s.gateways {
		settings, ok := snap.Providers[name]
		if !ok {
			continue
		}
		providers = append(providers, gateway.Provider{
			Name:     name,
			Priority: settings.Priority,
			Enabled:  settings.Enabled,
			Timeout:  settings.Timeout,
			Gateway:  gw,
		})
	}
	return providers
}

// record persists the turn. Persistence failures are logged, never fatal.
func (s *aiService) record(ctx context.Context, userID *uuid.UUID, request *dto.ChatRequest, intentName string, response *dto.ChatResponse, sources []enrich.Source) {
	rec := &entity.ConversationRecord{
		SessionID:   request.SessionID,
		UserID:      userID,
		UserMessage: request.Message,
		Response:    response.Response,
		Confidence:  response.Confidence,
		Provider:    response.AiProvider,
		Intent:      intentName,
		CreatedAt:   time.Now(),
	}
	for _, src := range sources {
		rec.Sources = append(rec.Sources, entity.ConversationSource{
			Filename: src.Filename,
			Filepath: src.Filepath,
			Score:    src.Score,
			Snippet:  src.Snippet,
		})
	}

	if err := s.conversationRepo.Create(ctx, rec); err != nil {
		s.logger.Error("AI", "Failed to persist conversation record", map[string]interface{}{
			"session_id": request.SessionID,
			"error":      err.Error(),
		})
		return
	}
	s.trace(request.SessionID, constant.StateRecorded, nil)
}

// notify fans the completed turn out to the stats bus, the event bus and
// websocket listeners. All best-effort.
func (s *aiService) notify(ctx context.Context, sessionID, intentName string, response *dto.ChatResponse, enriched bool) {
	if s.publisherService != nil {
		payload, err := json.Marshal(dto.QueryProcessedMessage{
			SessionID:  sessionID,
			Intent:     intentName,
			Provider:   response.AiProvider,
			Confidence: response.Confidence,
			Enriched:   enriched,
		})
		if err == nil {
			if err := s.publisherService.Publish(ctx, payload); err != nil {
				s.logger.Warn("AI", "Failed to publish stats message", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewConversationRecorded(sessionID, response.AiProvider, response.Confidence, len(response.Sources))
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("AI", "Failed to publish conversation event", map[string]interface{}{"error": err.Error()})
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(sessionID, map[string]interface{}{
			"type":        "ai_message",
			"session_id":  sessionID,
			"response":    response.Response,
			"confidence":  response.Confidence,
			"ai_provider": response.AiProvider,
		})
	}
}

func (s *aiService) GetConversations(ctx context.Context, sessionID string, limit int) ([]*dto.ConversationResponse, error) {
	records, err := s.conversationRepo.FindBySessionID(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ConversationResponse, len(records))
	for i, rec := range records {
		out[i] = &dto.ConversationResponse{
			Id:          rec.Id.String(),
			SessionID:   rec.SessionID,
			UserMessage: rec.UserMessage,
			Response:    rec.Response,
			Confidence:  rec.Confidence,
			Provider:    rec.Provider,
			Intent:      rec.Intent,
			Sources:     toSourceResponsesFromEntity(rec.Sources),
			CreatedAt:   rec.CreatedAt,
		}
	}
	return out, nil
}

func (s *aiService) DeleteSession(ctx context.Context, sessionID string) error {
	s.sessions.Delete(sessionID)
	s.classifier.Memory().Delete(sessionID)
	return s.conversationRepo.DeleteBySessionID(ctx, sessionID)
}

func (s *aiService) GetStatistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	total, byIntent, byProvider := s.statsService.Snapshot()

	// The durable breakdown survives restarts; merge it in when available.
	if rows, err := s.conversationRepo.CountByProvider(ctx); err == nil {
		for _, row := range rows {
			if row.Count > byProvider[row.Provider] {
				byProvider[row.Provider] = row.Count
			}
		}
	}
	if count, err := s.conversationRepo.Count(ctx); err == nil && count > total {
		total = count
	}

	return &dto.StatisticsResponse{
		TotalQueries:     total,
		QueriesByIntent:  byIntent,
		UsageByProvider:  byProvider,
		ActiveSessions:   s.sessions.Len(),
		IntentMemorySize: s.classifier.Memory().Len(),
	}, nil
}

func toSourceResponses(sources []enrich.Source) []dto.SourceResponse {
	if len(sources) == 0 {
		return nil
	}
	out := make([]dto.SourceResponse, len(sources))
	for i, src := range sources {
		out[i] = dto.SourceResponse{
			Filename: src.Filename,
			Filepath: src.Filepath,
			Score:    src.Score,
			Snippet:  src.Snippet,
		}
	}
	return out
}

func toSourceResponsesFromEntity(sources []entity.ConversationSource) []dto.SourceResponse {
	if len(sources) == 0 {
		return nil
	}
	out := make([]dto.SourceResponse, len(sources))
	for i, src := range sources {
		out[i] = dto.SourceResponse{
			Filename: src.Filename,
			Filepath: src.Filepath,
			Score:    src.Score,
			Snippet:  src.Snippet,
		}
	}
	return out
}
