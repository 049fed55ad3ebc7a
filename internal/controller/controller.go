package controller

import (
	"perf_eval_backend/internal/service"
	"perf_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// actorFrom pulls the authenticated actor out of the request context. A
// false return means the response was already written.
func actorFrom(ctx *gin.Context) (service.Actor, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return service.Actor{}, false
	}
	return service.Actor{ID: claims.UserID, Role: claims.Role}, true
}

// pathID parses the named path parameter as an id. A false return means the
// response was already written.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}
