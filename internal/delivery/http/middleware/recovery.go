package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Recovery - перехват паники в обработчике; паника логируется со стеком и превращается в 500
func Recovery(logger *zap.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.Error("Panic recovered",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("panic", fmt.Sprint(e)),
				zap.ByteString("stack", debug.Stack()))
		},
	})
}
