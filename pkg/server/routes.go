package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/storyq/storyq/pkg/contract"
)

func RegisterStoryServiceRoutes(service StoryService, parser contract.HTTPRequestParser, app *fiber.App) {
	app.Get("/stories/search", func(ctx *fiber.Ctx) error {
		input := &contract.SearchStories{}
		if err := parser.ParseQuery(ctx, input); err != nil {
			return err
		}

		output, err := service.SearchStories(ctx.UserContext(), input)
		if err != nil {
			return err
		}

		return ctx.JSON(output)
	})
	app.Post("/stories/search", func(ctx *fiber.Ctx) error {
		input := &contract.SearchStories{}
		if err := parser.ParseBody(ctx, input); err != nil {
			return err
		}

		output, err := service.SearchStories(ctx.UserContext(), input)
		if err != nil {
			return err
		}

		return ctx.JSON(output)
	})
	app.Get("/query/explain", func(ctx *fiber.Ctx) error {
		input := &contract.ExplainQuery{}
		if err := parser.ParseQuery(ctx, input); err != nil {
			return err
		}

		output, err := service.ExplainQuery(ctx.UserContext(), input)
		if err != nil {
			return err
		}

		return ctx.JSON(output)
	})
}
