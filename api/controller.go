package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vodolaz095/mocksmtpd"
)

// Controller exposes recorded mails, mock behaviors and counters of mocksmtpd.Server via HTTP
type Controller struct {
	Server  *mocksmtpd.Server
	Version string
}

// count is response of mails counting endpoint
type count struct {
	Count int `json:"count"`
}

// InitRoute registers endpoints of Controller
func (c *Controller) InitRoute(r gin.IRoutes) {
	handle(r.GET, "/smtpMails", c.listMails)
	handle(r.DELETE, "/smtpMails", c.clearMails)
	handle(r.GET, "/smtpMailsCount", c.countMails)
	handle(r.GET, "/smtpBehaviors", c.listBehaviors)
	handle(r.PUT, "/smtpBehaviors", c.setBehaviors)
	handle(r.DELETE, "/smtpBehaviors", c.clearBehaviors)
	r.GET("/version", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"version": c.Version})
	})
	r.GET("/metrics", gin.WrapF(c.Server.MetricsHandler()))
}

func (c *Controller) listMails(ctx *gin.Context) error {
	mails, err := c.Server.Repository.List(ctx.Request.Context())
	if err != nil {
		return err
	}
	ctx.JSON(http.StatusOK, mails)
	return nil
}

func (c *Controller) clearMails(ctx *gin.Context) error {
	err := c.Server.Repository.Clear(ctx.Request.Context())
	if err != nil {
		return err
	}
	ctx.Status(http.StatusNoContent)
	return nil
}

func (c *Controller) countMails(ctx *gin.Context) error {
	n, err := c.Server.Repository.Count(ctx.Request.Context())
	if err != nil {
		return err
	}
	ctx.JSON(http.StatusOK, count{Count: n})
	return nil
}

func (c *Controller) listBehaviors(ctx *gin.Context) error {
	ctx.JSON(http.StatusOK, c.Server.Behaviors.List())
	return nil
}

func (c *Controller) setBehaviors(ctx *gin.Context) error {
	var behaviors []mocksmtpd.Behavior
	err := ctx.ShouldBindJSON(&behaviors)
	if err != nil {
		return &gin.Error{Err: err, Type: gin.ErrorTypeBind}
	}
	for i := range behaviors {
		err = behaviors[i].Validate()
		if err != nil {
			return err
		}
	}
	c.Server.Behaviors.Set(behaviors)
	ctx.JSON(http.StatusOK, c.Server.Behaviors.List())
	return nil
}

func (c *Controller) clearBehaviors(ctx *gin.Context) error {
	c.Server.Behaviors.Clear()
	ctx.Status(http.StatusNoContent)
	return nil
}

func handle(method func(string, ...gin.HandlerFunc) gin.IRoutes, path string, f func(ctx *gin.Context) error) {
	method(path, func(ctx *gin.Context) {
		if err := f(ctx); err != nil {
			ctx.Abort()
			_ = ctx.Error(err)
		}
	})
}

// ErrorHandler is middleware converting errors of handlers into JSON responses
func ErrorHandler(logger mocksmtpd.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()
		err := ctx.Errors.Last()
		if err == nil {
			return
		}
		if err.Type == gin.ErrorTypeBind || errors.Is(err, mocksmtpd.ErrInvalidBehavior) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if logger != nil {
			logger.Errorf(&mocksmtpd.Transaction{ID: "api"}, "%s %s: %s",
				ctx.Request.Method, ctx.Request.URL.Path, err.Error())
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// New returns gin.Engine serving Controller endpoints
func New(server *mocksmtpd.Server, version string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), ErrorHandler(server.Logger))
	r.GET("/ping", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})
	c := Controller{Server: server, Version: version}
	c.InitRoute(r)
	return r
}
