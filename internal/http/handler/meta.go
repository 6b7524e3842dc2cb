package handler

import (
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"peoplehub.app/api/internal/apperr"
	"peoplehub.app/api/internal/http/dto"
	"peoplehub.app/api/internal/http/response"
)

// requestTypes are the request bodies clients can validate against before submitting.
var requestTypes = map[string]any{
	"register":            &dto.RegisterRequest{},
	"login":               &dto.LoginRequest{},
	"change_password":     &dto.ChangePasswordRequest{},
	"create_organization": &dto.CreateOrganizationRequest{},
	"update_organization": &dto.UpdateOrganizationRequest{},
	"add_member":          &dto.AddMemberRequest{},
	"update_member":       &dto.UpdateMemberRequest{},
	"attendance_action":   &dto.AttendanceActionRequest{},
	"create_leave":        &dto.CreateLeaveRequest{},
	"review_leave":        &dto.ReviewLeaveRequest{},
}

type MetaHandler struct {
	schemas map[string]*jsonschema.Schema
	names   []string
}

// NewMetaHandler reflects every request schema once at startup.
func NewMetaHandler() *MetaHandler {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	h := &MetaHandler{schemas: make(map[string]*jsonschema.Schema, len(requestTypes))}
	for name, v := range requestTypes {
		h.schemas[name] = reflector.Reflect(v)
		h.names = append(h.names, name)
	}
	sort.Strings(h.names)
	return h
}

func (h *MetaHandler) ListSchemas(c *gin.Context) {
	response.OK(c, "schemas fetched", h.names)
}

func (h *MetaHandler) GetSchema(c *gin.Context) {
	schema, ok := h.schemas[c.Param("name")]
	if !ok {
		_ = c.Error(apperr.NotFound("schema not found"))
		return
	}
	response.OK(c, "schema fetched", schema)
}
