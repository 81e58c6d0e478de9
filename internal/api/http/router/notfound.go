package router

import (
	"net/http"

	"github.com/dtroode/chirper-server/internal/apierror"
)

func apiNotFound(r *http.Request) error {
	return &apierror.Error{Kind: apierror.KindNotFound, Message: "route " + r.Method + " " + r.URL.Path + " not found"}
}
