package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TheCasperSolangi/arc-fun-front/internal/console/catalog"
	"github.com/TheCasperSolangi/arc-fun-front/internal/console/pipeline"
	"github.com/TheCasperSolangi/arc-fun-front/internal/filex"
)

// openStaged is a test seam for turning a local path into a staged upload
// candidate.
var openStaged = stageFromPath

// List fetches and prints the active screen's records.
func (a *App) List(ctx context.Context) error {
	p := a.currentPipeline()

	records, err := p.ListRecords(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	if len(records) == 0 {
		printlnFn("No records.")
		return nil
	}
	for _, rec := range records {
		printlnFn(formatRecord(p.Descriptor(), rec))
	}
	return nil
}

// Add walks the operator through a fresh draft and submits it.
func (a *App) Add(ctx context.Context) error {
	p := a.currentPipeline()
	if p.Descriptor().ReadOnly {
		printlnFn("This screen is read-only.")
		return nil
	}

	// Sequential ids derive from the current list; fetch it up front.
	if _, err := p.ListRecords(ctx); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	p.Reset()
	if err := a.fillDraft(ctx, p); err != nil {
		return err
	}
	return a.submit(ctx, p)
}

// Edit loads an existing record into the draft, re-walks its fields, and
// submits the update. An empty id prompts for one.
func (a *App) Edit(ctx context.Context, id string) error {
	p := a.currentPipeline()
	if p.Descriptor().ReadOnly {
		printlnFn("This screen is read-only.")
		return nil
	}

	records, err := p.ListRecords(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	if id == "" {
		id, err = getSimpleText(a.reader, "Enter record id to edit", os.Stdout)
		if err != nil {
			return err
		}
	}

	var target catalog.Record
	for _, rec := range records {
		if rec.ID() == id {
			target = rec
			break
		}
	}
	if target == nil {
		printlnFn("No record with id", id)
		return nil
	}

	p.BeginEdit(target)
	if err := a.fillDraft(ctx, p); err != nil {
		return err
	}
	return a.submit(ctx, p)
}

// Delete removes a record by id. The pipeline asks for confirmation before
// issuing the request.
func (a *App) Delete(ctx context.Context, id string) error {
	p := a.currentPipeline()
	if p.Descriptor().ReadOnly {
		printlnFn("This screen is read-only.")
		return nil
	}

	if id == "" {
		var err error
		id, err = getSimpleText(a.reader, "Enter record id to delete", os.Stdout)
		if err != nil {
			return err
		}
	}

	if err := p.DeleteRecord(ctx, id); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	return nil
}

func (a *App) submit(ctx context.Context, p *pipeline.Pipeline) error {
	if err := p.Submit(ctx); err != nil {
		printlnFn("Error:", err.Error())
		printlnFn("Your input was kept; fix the problem and submit again with 'add' or 'edit'.")
		return err
	}
	printlnFn("Saved.")
	return nil
}

// fillDraft walks every descriptor field, showing the current draft value
// and keeping it when the operator just presses Enter. Asset-backed fields
// offer a choice between a local file upload and a direct URL.
func (a *App) fillDraft(ctx context.Context, p *pipeline.Pipeline) error {
	for _, f := range p.Descriptor().Fields {
		if err := ctx.Err(); err != nil {
			return err
		}

		if p.Descriptor().AssetField(f.Name) != nil {
			if err := a.fillAssetField(p, f.Name); err != nil {
				return err
			}
			continue
		}

		var value string
		var err error
		if f.Multiline {
			value, err = getMultiline(a.reader, fieldPrompt(f, p.Field(f.Name)), os.Stdout)
		} else {
			value, err = getSimpleText(a.reader, fieldPrompt(f, p.Field(f.Name)), os.Stdout)
		}
		if err != nil {
			return err
		}
		if value != "" {
			p.SetField(f.Name, value)
		}
	}
	return nil
}

// fillAssetField handles one asset-backed field. A rejected file leaves the
// previous choice in place and re-asks.
func (a *App) fillAssetField(p *pipeline.Pipeline, name string) error {
	for {
		current := describeAssetChoice(p, name)
		choice, err := getSimpleText(a.reader,
			fmt.Sprintf("%s [%s]: (f)ile upload, (u)rl, Enter to keep", name, current), os.Stdout)
		if err != nil {
			return err
		}

		switch strings.ToLower(choice) {
		case "":
			return nil
		case "f":
			path, err := getSimpleText(a.reader, "Enter file path", os.Stdout)
			if err != nil {
				return err
			}
			staged, err := openStaged(path)
			if err != nil {
				printlnFn("Error:", err.Error())
				continue
			}
			if err := p.StageFile(name, staged); err != nil {
				printlnFn("Error:", err.Error())
				continue
			}
			printlnFn("Staged", staged.Name, "for upload on save")
			return nil
		case "u":
			url, err := getSimpleText(a.reader, "Enter URL", os.Stdout)
			if err != nil {
				return err
			}
			if url != "" {
				p.SetField(name, url)
			}
			return nil
		default:
			printlnFn("Unknown choice:", choice)
		}
	}
}

// stageFromPath sniffs a local file and wraps it as an upload candidate. The
// content is not read until the upload itself runs.
func stageFromPath(path string) (*pipeline.StagedFile, error) {
	desc, err := filex.Describe(path)
	if err != nil {
		return nil, err
	}
	return &pipeline.StagedFile{
		Name:      desc.Name,
		MIMEType:  desc.MIMEType,
		SizeBytes: desc.SizeBytes,
		Open:      func() (io.ReadCloser, error) { return os.Open(desc.Path) },
	}, nil
}

func fieldPrompt(f catalog.FieldSpec, current string) string {
	prompt := "Enter " + f.Name
	if f.Kind == catalog.Choice {
		prompt += " (" + strings.Join(f.Options, ", ") + ")"
	}
	if f.Kind == catalog.Rating {
		prompt += " (1-5)"
	}
	if f.Required {
		prompt += " *"
	}
	if current != "" {
		prompt += fmt.Sprintf(" [%s]", current)
	}
	return prompt
}

func describeAssetChoice(p *pipeline.Pipeline, name string) string {
	if staged := p.Staged(name); staged != nil {
		return "file: " + staged.Name
	}
	if url := p.Field(name); url != "" {
		return url
	}
	return "empty"
}

func formatRecord(d *catalog.Descriptor, rec catalog.Record) string {
	parts := []string{"id=" + rec.ID()}
	for _, f := range d.Fields {
		v := rec[f.Name]
		if v == nil || v == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", f.Name, v))
	}
	return strings.Join(parts, "  ")
}
