package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klassico/storefront/internal/config"
	"github.com/klassico/storefront/internal/dataservice"
	"github.com/klassico/storefront/internal/logger"
	"github.com/klassico/storefront/internal/models"
	"github.com/klassico/storefront/internal/productform"
	"github.com/klassico/storefront/internal/redissvc"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errUnknownCategory = errors.New("unknown category")

type globalOptions struct {
	api      string
	username string
	password string
	redis    string
}

type productOptions struct {
	name        string
	slug        string
	description string
	price       string
	category    string
	inStock     bool
	featured    bool
	tags        []string
	image       string
}

// printNotifier writes workflow notifications to the terminal.
type printNotifier struct {
	out io.Writer
}

func (n printNotifier) Success(msg string) { fmt.Fprintln(n.out, "✔ "+msg) }

func (n printNotifier) Error(msg string) { fmt.Fprintln(n.out, "✘ "+msg) }

func newRootCmd(cfg *config.Config, out io.Writer) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "klassico-admin",
		Short:         "Manage the Klassico catalog",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.api, "api", cfg.DataService.BaseURL, "catalog service base URL")
	root.PersistentFlags().StringVar(&opts.username, "username", cfg.Auth.AdminUsername, "admin username")
	root.PersistentFlags().StringVar(&opts.password, "password", cfg.Auth.AdminPassword, "admin password")
	root.PersistentFlags().StringVar(&opts.redis, "redis", cfg.Redis.Addr, "redis address for listing invalidation, empty to skip")

	root.AddCommand(
		newCategoriesCmd(cfg, opts),
		newCreateCmd(cfg, opts),
		newUpdateCmd(cfg, opts),
	)
	return root
}

func newClient(cfg *config.Config, opts *globalOptions) *dataservice.Client {
	return dataservice.New(opts.api, cfg.DataService.Timeout, dataservice.WithLogger(logger.GetLogger()))
}

func newCategoriesCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := newClient(cfg, opts).GetCategories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", c.ID, c.Slug, c.Name)
			}
			return nil
		},
	}
}

func addProductFlags(cmd *cobra.Command, p *productOptions) {
	f := cmd.Flags()
	f.StringVar(&p.name, "name", "", "product name")
	f.StringVar(&p.slug, "slug", "", "URL slug, derived from the name when empty")
	f.StringVar(&p.description, "description", "", "product description")
	f.StringVar(&p.price, "price", "", "price")
	f.StringVar(&p.category, "category", "", "category id or slug")
	f.BoolVar(&p.inStock, "in-stock", true, "product is in stock")
	f.BoolVar(&p.featured, "featured", false, "show the product as featured")
	f.StringArrayVar(&p.tags, "tag", nil, "tag to add, repeatable")
	f.StringVar(&p.image, "image", "", "path to an image to upload after saving")
}

func newCreateCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	p := &productOptions{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSubmit(cmd, cfg, opts, p, "")
		},
	}
	addProductFlags(cmd, p)
	return cmd
}

func newUpdateCmd(cfg *config.Config, opts *globalOptions) *cobra.Command {
	p := &productOptions{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, cfg, opts, p, args[0])
		},
	}
	addProductFlags(cmd, p)
	return cmd
}

func runSubmit(cmd *cobra.Command, cfg *config.Config, opts *globalOptions, p *productOptions, productID string) error {
	ctx := cmd.Context()
	log := logger.GetLogger()
	client := newClient(cfg, opts)

	if err := client.Login(ctx, opts.username, opts.password); err != nil {
		log.Warn("Login failed", zap.String("username", opts.username), zap.Error(err))
	}

	form := productform.New()
	if productID != "" {
		existing, err := client.GetProduct(ctx, productID)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("product %s not found", productID)
		}
		form.Load(*existing)
	}

	if err := applyProductFlags(ctx, cmd, form, p, client); err != nil {
		return err
	}

	var cache productform.CacheInvalidator
	if opts.redis != "" {
		rdb := redis.NewClient(&redis.Options{Addr: opts.redis, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		cache = redissvc.NewRedisService(rdb)
	}

	notifier := printNotifier{out: cmd.OutOrStdout()}
	workflow := productform.NewWorkflow(client, cache, notifier, client,
		productform.WithLogger(log),
		productform.WithPhaseHook(func(ph productform.Phase) {
			log.Debug("Submission phase", zap.String("phase", string(ph)))
		}),
	)

	if p.image != "" {
		file, err := productform.OpenFile(p.image)
		if err != nil {
			return err
		}
		if err := workflow.DropImage(form, file); err != nil {
			return err
		}
	}

	outcome, err := workflow.Submit(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", outcome.Product.ID, outcome.Product.Slug)
	if outcome.ImageURL != "" {
		fmt.Fprintln(cmd.OutOrStdout(), outcome.ImageURL)
	}
	return nil
}

// applyProductFlags copies the flags the user set onto form. On update only
// changed flags are applied so unspecified fields keep their stored values.
func applyProductFlags(ctx context.Context, cmd *cobra.Command, form *productform.Form, p *productOptions, categories categoryLister) error {
	changed := func(name string) bool {
		return !form.Editing() || cmd.Flags().Changed(name)
	}

	if changed("name") {
		form.SetName(p.name)
	}
	if cmd.Flags().Changed("slug") {
		form.SetSlug(p.slug)
	}
	if changed("description") {
		form.SetDescription(p.description)
	}
	if changed("price") {
		form.SetPrice(p.price)
	}
	if cmd.Flags().Changed("category") {
		id, err := resolveCategory(ctx, categories, p.category)
		if err != nil {
			return err
		}
		form.SelectCategory(id)
	}
	if changed("in-stock") {
		form.SetInStock(p.inStock)
	}
	if changed("featured") {
		form.SetFeatured(p.featured)
	}
	for _, tag := range p.tags {
		form.SetTagInput(tag)
		form.AddTag()
	}
	return nil
}

type categoryLister interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
}

// resolveCategory accepts a category id or slug.
func resolveCategory(ctx context.Context, lister categoryLister, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}
	categories, err := lister.GetCategories(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range categories {
		if c.ID == ref || c.Slug == ref {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %s", errUnknownCategory, ref)
}
