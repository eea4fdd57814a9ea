package graph

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"

	"blog-service/internal/apperr"
)

// Handler serves the GraphQL endpoint. Errors raised by resolvers are
// reshaped into {message, status, data} entries; plain query errors (syntax,
// unknown fields) keep their message only. Introspection needs no auth and is
// never blocked here.
type Handler struct {
	schema graphql.Schema
}

func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

type graphQLRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

type graphQLError struct {
	Message string              `json:"message"`
	Status  int                 `json:"status,omitempty"`
	Data    []apperr.FieldError `json:"data,omitempty"`
}

type graphQLResponse struct {
	Data   interface{}    `json:"data"`
	Errors []graphQLError `json:"errors,omitempty"`
}

func (h *Handler) Serve(c *fiber.Ctx) error {
	var req graphQLRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}

	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Must provide query string."})
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.UserContext(),
	})

	resp := graphQLResponse{Data: result.Data}
	for _, fe := range result.Errors {
		resp.Errors = append(resp.Errors, formatError(c, fe))
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func formatError(c *fiber.Ctx, fe gqlerrors.FormattedError) graphQLError {
	orig := underlyingError(fe)
	if orig == nil {
		// query-level error, no resolver involved
		return graphQLError{Message: fe.Message}
	}

	appErr := apperr.From(orig)
	if appErr.Code >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "Unhandled resolver error", "error", orig, "path", c.Path())
	}

	return graphQLError{Message: appErr.Message, Status: appErr.Code, Data: appErr.Data}
}

// underlyingError unwraps the gqlerrors layers down to the error the resolver
// actually returned, or nil when the error originated in query processing.
func underlyingError(fe gqlerrors.FormattedError) error {
	err := fe.OriginalError()
	for err != nil {
		switch e := err.(type) {
		case *gqlerrors.Error:
			err = e.OriginalError
		case gqlerrors.Error:
			err = e.OriginalError
		case gqlerrors.FormattedError:
			err = e.OriginalError()
		default:
			return err
		}
	}
	return nil
}
