package router

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/pkg/llm"
	"ai-assistant-be/pkg/sandbox"

	"github.com/google/uuid"
)

// ActionRespond is the sentinel action for "no side effect, just talk".
const ActionRespond = "respond"

// CommandResult is the uniform outcome of handling one chat message. Every
// path through the router, success or failure, funnels into this shape.
type CommandResult struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Payload map[string]interface{} `json:"payload"`
}

// Config carries the per-deployment knobs of the dispatch core.
type Config struct {
	Model            string
	MaxMessageLength int
}

type executorFunc func(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error)

// Router translates chat messages into assistant actions. It asks the
// completion provider for an action plan and dispatches it against a fixed
// executor registry.
type Router struct {
	provider llm.LLMProvider
	store    DocumentStore
	files    *sandbox.Reader
	logger   logger.ILogger
	cfg      Config

	// executors is a closed table: the model-supplied action string only
	// ever selects a key here, never a code path by reflection.
	executors map[string]executorFunc
}

func NewRouter(
	provider llm.LLMProvider,
	store DocumentStore,
	files *sandbox.Reader,
	sysLogger logger.ILogger,
	cfg Config,
) *Router {
	r := &Router{
		provider: provider,
		store:    store,
		files:    files,
		logger:   sysLogger,
		cfg:      cfg,
	}
	r.executors = map[string]executorFunc{
		"list_documents":  r.listDocuments,
		"create_document": r.createDocument,
		"read_document":   r.readDocument,
		"update_document": r.updateDocument,
		"delete_document": r.deleteDocument,
		"read_file":       r.readFile,
	}
	return r
}

// HandleMessage runs the full chat → plan → dispatch flow for one message.
// It never returns an error: every failure mode is converted into a failed
// CommandResult with a user-visible message.
func (r *Router) HandleMessage(ctx context.Context, userMessage string, history []llm.Message) *CommandResult {
	if r.cfg.MaxMessageLength > 0 && utf8.RuneCountInString(userMessage) > r.cfg.MaxMessageLength {
		return &CommandResult{
			Success: false,
			Message: fmt.Sprintf("Messages must be %d characters or fewer.", r.cfg.MaxMessageLength),
		}
	}

	raw, err := r.provider.Chat(ctx,
		BuildMessages(userMessage, history),
		llm.WithModel(r.cfg.Model),
		llm.WithJSONOutput(),
	)
	if err != nil {
		completionErr := &CompletionError{Err: err}
		r.logger.Error("ai-router", "completion call failed", map[string]interface{}{
			"error": completionErr.Error(),
		})
		return &CommandResult{
			Success: false,
			Message: "The assistant is unavailable right now. Please try again.",
		}
	}

	plan, err := ParsePlan(raw)
	if err != nil {
		r.logger.Warn("ai-router", "malformed action plan", map[string]interface{}{
			"error": err.Error(),
		})
		return &CommandResult{Success: false, Message: err.Error()}
	}

	return r.Dispatch(ctx, plan)
}

// Dispatch executes a validated plan against the executor registry.
func (r *Router) Dispatch(ctx context.Context, plan *ActionPlan) *CommandResult {
	if plan.Action == ActionRespond {
		// The template is the model's direct answer. No substitution.
		return &CommandResult{Success: true, Message: plan.ResponseTemplate}
	}

	executor, ok := r.executors[plan.Action]
	if !ok {
		unsupported := &UnsupportedActionError{Action: plan.Action}
		r.logger.Warn("ai-router", "unsupported action requested", map[string]interface{}{
			"action": plan.Action,
		})
		return &CommandResult{Success: false, Message: unsupported.Error()}
	}

	result, err := executor(ctx, plan.Arguments)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			// Expected domain outcome, not an internal error.
			return &CommandResult{Success: false, Message: validationErr.Reason}
		}
		r.logger.Error("ai-router", "executor failed", map[string]interface{}{
			"action": plan.Action,
			"error":  err.Error(),
		})
		return &CommandResult{Success: false, Message: "The requested action could not be completed."}
	}

	values := make(map[string]interface{}, len(result)+1)
	for key, value := range result {
		values[key] = value
	}
	values["action"] = plan.Action

	return &CommandResult{
		Success: true,
		Message: FormatTemplate(plan.ResponseTemplate, values),
		Payload: result,
	}
}

// --- Executors ---

func (r *Router) listDocuments(ctx context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
	documents, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}
	serialized := make([]map[string]interface{}, 0, len(documents))
	for _, document := range documents {
		serialized = append(serialized, SerializeDocument(document))
	}
	return map[string]interface{}{"documents": serialized}, nil
}

func (r *Router) createDocument(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	title, err := requireStringArg(args, "title", "create a document")
	if err != nil {
		return nil, err
	}
	content, err := requireStringArg(args, "content", "create a document")
	if err != nil {
		return nil, err
	}
	document, err := r.store.Create(ctx, title, content)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"document": SerializeDocument(document)}, nil
}

func (r *Router) readDocument(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	id, err := documentIDArg(args, "read")
	if err != nil {
		return nil, err
	}
	document, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"document": SerializeDocument(document)}, nil
}

func (r *Router) updateDocument(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	id, err := documentIDArg(args, "update")
	if err != nil {
		return nil, err
	}
	update := DocumentUpdate{}
	if raw, present := args["title"]; present {
		title, ok := raw.(string)
		if !ok {
			return nil, &ValidationError{Reason: "`title` must be a string."}
		}
		update.Title = &title
	}
	if raw, present := args["content"]; present {
		content, ok := raw.(string)
		if !ok {
			return nil, &ValidationError{Reason: "`content` must be a string."}
		}
		update.Content = &content
	}
	document, err := r.store.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"document": SerializeDocument(document)}, nil
}

func (r *Router) deleteDocument(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	id, err := documentIDArg(args, "delete")
	if err != nil {
		return nil, err
	}
	if err := r.store.Delete(ctx, id); err != nil {
		return nil, err
	}
	return map[string]interface{}{"deleted": id.String()}, nil
}

func (r *Router) readFile(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	_ = ctx
	raw, present := args["path"]
	if !present || raw == nil {
		return nil, &ValidationError{Reason: "`path` is required to read a file."}
	}
	path, ok := raw.(string)
	if !ok {
		return nil, &ValidationError{Reason: "`path` must be a string."}
	}

	content, err := r.files.Read(path)
	if err != nil {
		var sandboxErr *sandbox.ValidationError
		if errors.As(err, &sandboxErr) {
			return nil, &ValidationError{Reason: sandboxErr.Reason}
		}
		return nil, err
	}
	return map[string]interface{}{"path": content.Path, "content": content.Content}, nil
}

// --- Argument projection helpers ---

func requireStringArg(args map[string]interface{}, key, action string) (string, error) {
	raw, present := args[key]
	if !present || raw == nil {
		return "", &ValidationError{Reason: fmt.Sprintf("`%s` is required to %s.", key, action)}
	}
	value, ok := raw.(string)
	if !ok {
		return "", &ValidationError{Reason: fmt.Sprintf("`%s` must be a string.", key)}
	}
	return value, nil
}

func documentIDArg(args map[string]interface{}, verb string) (uuid.UUID, error) {
	raw, present := args["id"]
	if !present || raw == nil {
		return uuid.Nil, &ValidationError{Reason: fmt.Sprintf("`id` is required to %s a document.", verb)}
	}
	value, ok := raw.(string)
	if !ok {
		return uuid.Nil, &ValidationError{Reason: "`id` must be a document id string."}
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, &ValidationError{Reason: fmt.Sprintf("'%s' is not a valid document id.", value)}
	}
	return id, nil
}
