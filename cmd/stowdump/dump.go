package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/milk9111/stowage/ecs"
	"github.com/milk9111/stowage/ecs/component"
	"github.com/milk9111/stowage/ecs/entity"
	"github.com/milk9111/stowage/ecs/system"
	"github.com/milk9111/stowage/layout"
	"github.com/milk9111/stowage/prefabs"
)

type dumpOptions struct {
	Scene  string
	Frames int
	All    bool
}

// row is one line of the dump: a contained item and where it is drawn.
type row struct {
	Depth     int
	ID        string
	Slot      int
	Placement layout.Placement
	Drawn     bool
}

type styles struct {
	title  lipgloss.Style
	id     lipgloss.Style
	number lipgloss.Style
	dim    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("36")),
		id:     r.NewStyle().Foreground(lipgloss.Color("255")),
		number: r.NewStyle().Foreground(lipgloss.Color("36")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// drawnSet records which items the draw pass would emit.
type drawnSet map[ecs.Entity]bool

func (d drawnSet) DrawSprite(call system.DrawCall) {
	d[call.Item] = true
}

func dump(ctx context.Context, out io.Writer, opts dumpOptions, logger *log.Logger) error {
	w := ecs.NewWorld()
	scene, err := entity.BuildScene(w, opts.Scene, logger)
	if err != nil {
		return err
	}

	physics := system.NewPhysicsSystem()
	physics.EnsureBodies(w)
	scheduler := ecs.NewScheduler(physics, system.NewContainerSyncSystem(logger))

	corrections := 0
	for i := 0; i < opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		scheduler.Update(w)
		for _, ev := range w.Events().Drain() {
			if ev.Type == ecs.EventRotationCorrected {
				corrections++
			}
		}
	}
	if opts.Frames == 0 {
		system.NewContainerSyncSystem(logger).Update(w)
	}
	logger.Debug("simulated", "scene", scene.Name, "frames", opts.Frames, "corrections", corrections)

	rows := collectRows(w, scene, opts.All)
	return writeRows(out, scene.Name, rows)
}

// collectRows walks every outermost container depth first, in slot order.
func collectRows(w *ecs.World, scene *entity.Scene, all bool) []row {
	drawn := drawnSet{}
	system.NewContainerDrawSystem(nil).Draw(w, drawn)

	var rows []row
	var walk func(owner ecs.Entity, depth int)
	walk = func(owner ecs.Entity, depth int) {
		c, ok := ecs.Get(w, owner, component.ContainerComponent.Kind())
		if !ok {
			return
		}
		for slot, item := range c.Slots {
			if !item.Valid() {
				continue
			}
			p, ok := system.PlacementOf(w, item)
			if !ok {
				continue
			}
			if drawn[item] || all {
				rows = append(rows, row{Depth: depth, ID: scene.ID(item), Slot: slot, Placement: p, Drawn: drawn[item]})
			}
			walk(item, depth+1)
		}
	}
	for _, root := range system.RootContainers(w) {
		rows = append(rows, row{Depth: 0, ID: scene.ID(root), Slot: -1})
		walk(root, 1)
	}
	return rows
}

func writeRows(out io.Writer, sceneName string, rows []row) error {
	st := newStyles(out)
	if _, err := fmt.Fprintln(out, st.title.Render("scene "+sceneName)); err != nil {
		return err
	}
	for _, r := range rows {
		indent := strings.Repeat("  ", r.Depth)
		if r.Slot < 0 {
			if _, err := fmt.Fprintln(out, indent+st.title.Render(r.ID)); err != nil {
				return err
			}
			continue
		}
		p := r.Placement
		line := fmt.Sprintf("%s%s %s %s rot %s depth %s flip %s",
			indent,
			st.dim.Render(fmt.Sprintf("[%d]", r.Slot)),
			st.id.Render(fmt.Sprintf("%-12s", r.ID)),
			st.number.Render(fmt.Sprintf("(%7.2f, %7.2f)", p.Position.X, p.Position.Y)),
			st.number.Render(fmt.Sprintf("%6.3f", p.Rotation)),
			st.number.Render(fmt.Sprintf("%.2f", p.Depth)),
			flipString(p.Flip),
		)
		if !r.Drawn {
			line += " " + st.dim.Render("hidden")
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func flipString(f layout.Flip) string {
	switch {
	case f.Horizontal() && f.Vertical():
		return "xy"
	case f.Horizontal():
		return "x"
	case f.Vertical():
		return "y"
	default:
		return "-"
	}
}

func listScenes(out io.Writer) error {
	for _, name := range prefabs.Scenes() {
		if _, err := fmt.Fprintln(out, name); err != nil {
			return err
		}
	}
	return nil
}
