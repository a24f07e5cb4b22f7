package commands

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joefazee/neo-admin/app/categories"
	"github.com/joefazee/neo-admin/internal/cli"
	"github.com/joefazee/neo-admin/internal/formatter"
	"github.com/joefazee/neo-admin/internal/terminal"
	"github.com/joefazee/neo-admin/models"
	"github.com/spf13/cobra"
)

const deleteCancelledMessage = "Deletion cancelled."

// fieldFlags are the category inputs shared by create and edit.
type fieldFlags struct {
	name, slug, details             string
	iconURL, imageURL, bannerURL    string
	iconFile, imageFile, bannerFile string
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.name, "name", "", "category name")
	flags.StringVar(&f.slug, "slug", "", "category slug")
	flags.StringVar(&f.details, "details", "", "category description")
	flags.StringVar(&f.iconURL, "icon-url", "", "icon URL, empty to clear")
	flags.StringVar(&f.imageURL, "image-url", "", "image URL, empty to clear")
	flags.StringVar(&f.bannerURL, "banner-url", "", "banner URL, empty to clear")
	flags.StringVar(&f.iconFile, "icon-file", "", "upload a local icon file")
	flags.StringVar(&f.imageFile, "image-file", "", "upload a local image file")
	flags.StringVar(&f.bannerFile, "banner-file", "", "upload a local banner file")
	cmd.MarkFlagsMutuallyExclusive("icon-url", "icon-file")
	cmd.MarkFlagsMutuallyExclusive("image-url", "image-file")
	cmd.MarkFlagsMutuallyExclusive("banner-url", "banner-file")
}

// fields builds the payload from the flags the user actually set.
func (f *fieldFlags) fields(cmd *cobra.Command) (categories.CategoryFields, error) {
	var out categories.CategoryFields
	changed := cmd.Flags().Changed

	if changed("name") {
		out.Name = categories.String(f.name)
	}
	if changed("slug") {
		out.Slug = categories.String(f.slug)
	}
	if changed("details") {
		out.Details = categories.String(f.details)
	}

	media := []struct {
		target            **models.Media
		urlFlag, fileFlag string
		url, file         string
	}{
		{&out.Icon, "icon-url", "icon-file", f.iconURL, f.iconFile},
		{&out.Image, "image-url", "image-file", f.imageURL, f.imageFile},
		{&out.BannerImg, "banner-url", "banner-file", f.bannerURL, f.bannerFile},
	}
	for _, m := range media {
		switch {
		case changed(m.fileFlag):
			file, err := readMedia(m.file)
			if err != nil {
				return out, err
			}
			*m.target = &file
		case changed(m.urlFlag):
			value := models.Media{}
			if m.url != "" {
				value = models.RemoteMedia(m.url, "")
			}
			*m.target = &value
		}
	}
	return out, nil
}

func readMedia(path string) (models.Media, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Media{}, fmt.Errorf("read media file: %w", err)
	}
	return models.UploadedMedia(filepath.Base(path), http.DetectContentType(data), data), nil
}

func newCategoriesCreate(params *cli.CmdParams) *cobra.Command {
	var flags fieldFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := flags.fields(cmd)
			if err != nil {
				return err
			}
			return saveCategory(cmd, params, "", fields)
		},
	}
	flags.register(cmd)
	return cmd
}

func newCategoriesEdit(params *cli.CmdParams) *cobra.Command {
	var flags fieldFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a category",
		Long:  `Update a category. Only the flags given on the command line are sent.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := flags.fields(cmd)
			if err != nil {
				return err
			}
			return saveCategory(cmd, params, args[0], fields)
		},
	}
	flags.register(cmd)
	return cmd
}

func saveCategory(cmd *cobra.Command, params *cli.CmdParams, id string, fields categories.CategoryFields) error {
	c, err := params.Deps()
	if err != nil {
		return err
	}
	mod := c.Categories()
	defer mod.View.Close()

	var category *models.Category
	if id == "" {
		category, err = mod.Saver.Create(cmd.Context(), fields)
	} else {
		category, err = mod.Saver.Edit(cmd.Context(), id, fields)
	}
	if err != nil {
		printFieldErrors(c.Terminal, err)
		return cli.Reported(err)
	}
	return formatter.CategoryDetail(termWriter{c.Terminal}, category, params.Clock())
}

func newCategoriesDelete(params *cli.CmdParams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long:  `Delete a category after confirmation. This action cannot be undone.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := params.Deps()
			if err != nil {
				return err
			}
			mod := c.Categories()
			defer mod.View.Close()

			category, err := mod.Gateway.GetCategory(cmd.Context(), args[0])
			if err != nil {
				c.Terminal.Error("Error!", models.UserMessage(err, showFailedMessage))
				return cli.Reported(err)
			}
			return deleteCategory(cmd, c.Terminal, mod, *category)
		},
	}
	cmd.Flags().BoolVarP(&params.AssumeYes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func deleteCategory(cmd *cobra.Command, term *terminal.Terminal, mod *categories.Module, category models.Category) error {
	outcome, err := mod.Deleter.Delete(cmd.Context(), category)
	if err != nil {
		if outcome == categories.OutcomeFailed {
			return cli.Reported(err)
		}
		return err
	}
	if outcome == categories.OutcomeDeclined {
		term.Printf("%s\n", deleteCancelledMessage)
	}
	return nil
}
