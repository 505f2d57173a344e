package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// MsgCrash is the panic value raised by the crash-test hook.
const MsgCrash = "Сервер сейчас упадёт"

// Scheduler runs fn later on its own goroutine.
type Scheduler func(fn func())

// AfterResponse schedules fn right away, outside the request.
func AfterResponse(fn func()) {
	time.AfterFunc(0, fn)
}

// NewCrashTestHandler returns the fault-injection hook behind GET /crash-test.
// The panic happens on a goroutine the recover middleware does not cover, so
// it takes the whole process down.
func NewCrashTestHandler(schedule Scheduler) fiber.Handler {
	if schedule == nil {
		schedule = AfterResponse
	}
	return func(c *fiber.Ctx) error {
		schedule(func() {
			panic(MsgCrash)
		})
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": MsgCrash})
	}
}
