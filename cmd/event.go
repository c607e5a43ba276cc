package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/campus/internal/formatter"
	"github.com/desertthunder/campus/internal/models"
	"github.com/desertthunder/campus/internal/shared"
	"github.com/urfave/cli/v3"
)

// EventCreate stores one event built from flags and prints its id.
func (r *Runner) EventCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepare(ctx, cmd); err != nil {
		return err
	}
	defer r.close()

	in := models.EventInput{
		Title:            cmd.String("title"),
		Description:      cmd.String("description"),
		Location:         cmd.String("location"),
		RoomNumber:       cmd.String("room"),
		Address:          cmd.String("address"),
		ZipCode:          cmd.String("zip"),
		Date:             cmd.String("date"),
		Time:             cmd.String("time"),
		EndTime:          cmd.String("end-time"),
		Category:         cmd.String("category"),
		ImageURI:         cmd.String("image"),
		ParticipantLimit: cmd.String("limit"),
	}

	id, err := r.events.Create(ctx, in).Wait(ctx)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return r.writePlain("✓ Event created: %s (id %d)\n", in.Title, id)
}

// EventList prints every event, newest first, in the requested format.
func (r *Runner) EventList(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	if _, err := formatter.Render(nil, format); err != nil {
		return err
	}

	if err := r.prepare(ctx, cmd); err != nil {
		return err
	}
	defer r.close()

	events, err := r.events.ListAll(ctx).Wait(ctx)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if err := formatter.WriteExport(r.output, events, format, output); err != nil {
		return err
	}
	if output != "" {
		r.logger.Info("events exported", "path", output, "count", len(events))
	}
	return nil
}

// EventGet prints one event by id.
func (r *Runner) EventGet(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.StringArg("id")
	if raw == "" {
		return fmt.Errorf("%w: event id", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: event id %q is not a number", shared.ErrInvalidArgument, raw)
	}

	if err := r.prepare(ctx, cmd); err != nil {
		return err
	}
	defer r.close()

	event, err := r.events.GetByID(ctx, id).Wait(ctx)
	if err != nil {
		return err
	}
	if event == nil {
		return fmt.Errorf("%w: event %d", shared.ErrNotFound, id)
	}

	if cmd.Bool("json") {
		return r.writeJSON(event, true)
	}
	_, err = r.output.Write(formatter.EventDetail(*event))
	return err
}
