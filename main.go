package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sunthewhat/easy-cert-portal/api"
	"github.com/sunthewhat/easy-cert-portal/common/config"
	"github.com/sunthewhat/easy-cert-portal/common/util"
	"github.com/sunthewhat/easy-cert-portal/internal/certificate"
	"github.com/sunthewhat/easy-cert-portal/internal/layout"
	"github.com/sunthewhat/easy-cert-portal/internal/notifier"
	"github.com/sunthewhat/easy-cert-portal/internal/renderer"
	"github.com/sunthewhat/easy-cert-portal/internal/storage"
	"github.com/sunthewhat/easy-cert-portal/type/shared"
)

type stores struct {
	blob    storage.Blob
	layouts storage.Document
	ledger  storage.Document
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to the config file")
	hashPassword := flag.String("HashPassword", "", "Print the bcrypt hash for auth.admin_password_hash and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := util.HashPassword(*hashPassword)
		if err != nil {
			fatal("Failed to hash password", err)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("Failed to load config", err)
	}
	if *cfg.Environment {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := initStorage(ctx, cfg)
	if err != nil {
		fatal("Failed to initialize storage", err)
	}

	templates, err := layout.NewStore(ctx, st.layouts, *cfg.Templates.Dir)
	if err != nil {
		fatal("Failed to load template layouts", err)
	}
	if err := templates.Discover(ctx); err != nil {
		fatal("Failed to discover templates", err)
	}

	ledger, err := certificate.NewLedger(ctx, st.ledger)
	if err != nil {
		fatal("Failed to load certificate ledger", err)
	}

	raster, closeRaster, err := initRasterizer(cfg)
	if err != nil {
		fatal("Failed to initialize rasterizer", err)
	}
	defer closeRaster()

	timeout, _ := config.RenderTimeout(cfg)
	location, _ := config.Location(cfg)
	publicURL := strings.TrimRight(*cfg.PublicURL, "/")

	r := renderer.New(raster,
		renderer.WithTimeout(timeout),
		renderer.WithVerifyURL(publicURL+"/api/public/verify"),
	)

	signer, err := renderer.NewPDFSigner(*cfg.Render.SigningCertPath, *cfg.Render.SigningKeyPath)
	if err != nil {
		fatal("Failed to initialize PDF signer", err)
	}

	var notifyOpts []notifier.Option
	if *cfg.Mail.AttachPDF {
		notifyOpts = append(notifyOpts, notifier.WithPDFAttachments(func(png []byte, id string) ([]byte, error) {
			return renderer.ExportPDF(png, id, signer)
		}))
	}

	app := api.NewApp(api.Dependencies{
		Config:    cfg,
		Templates: templates,
		Generator: certificate.NewGenerator(r, st.blob, ledger),
		Ledger:    ledger,
		Notifier:  notifier.New(st.blob, publicURL, notifyOpts...),
		Blob:      st.blob,
		Signer:    signer,
		Location:  location,
	})

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down server")
		if err := app.Shutdown(); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	if err := api.InitFiber(app, *cfg.Port); err != nil {
		closeRaster()
		os.Exit(1)
	}
}

func initStorage(ctx context.Context, cfg *shared.Config) (*stores, error) {
	switch *cfg.Storage.Driver {
	case "minio":
		client, err := util.NewMinIOClient(
			*cfg.Storage.MinIoEndpoint,
			*cfg.Storage.MinIoAccessKey,
			*cfg.Storage.MinIoSecretKey,
			*cfg.Storage.MinIoSecure,
		)
		if err != nil {
			return nil, err
		}
		if err := util.EnsureBucket(ctx, client, *cfg.Storage.MinIoBucket); err != nil {
			return nil, err
		}
		state := storage.NewMinIOBlob(client, *cfg.Storage.MinIoBucket, "state/")
		slog.Info("Using MinIO storage", "endpoint", *cfg.Storage.MinIoEndpoint, "bucket", *cfg.Storage.MinIoBucket)
		return &stores{
			blob:    storage.NewMinIOBlob(client, *cfg.Storage.MinIoBucket, "certificates/"),
			layouts: storage.NewMinIODocument(state, "layouts.json"),
			ledger:  storage.NewMinIODocument(state, "ledger.json"),
		}, nil

	default:
		dir := *cfg.Storage.DataDir
		blob, err := storage.NewLocalBlob(filepath.Join(dir, "certificates"))
		if err != nil {
			return nil, err
		}
		layouts, err := storage.NewLocalDocument(filepath.Join(dir, "layouts.json"))
		if err != nil {
			return nil, err
		}
		ledger, err := storage.NewLocalDocument(filepath.Join(dir, "ledger.json"))
		if err != nil {
			return nil, err
		}
		slog.Info("Using local storage", "data_dir", dir)
		return &stores{blob: blob, layouts: layouts, ledger: ledger}, nil
	}
}

func initRasterizer(cfg *shared.Config) (renderer.Rasterizer, func(), error) {
	if *cfg.Render.Engine == "native" {
		raster, err := renderer.NewNativeRasterizer()
		return raster, func() {}, err
	}

	raster, err := renderer.NewBrowserRasterizer(*cfg.Render.ChromePath)
	if err != nil {
		return nil, nil, err
	}
	return raster, raster.Close, nil
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
