package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ondetemapp/ondetem/internal/client/kv"
	"github.com/ondetemapp/ondetem/internal/client/repository"
	"github.com/ondetemapp/ondetem/internal/client/session"
	"github.com/ondetemapp/ondetem/internal/client/transport"
)

const usage = `usage: ondetem-client [-server URL] [-store FILE] <command> [args]

commands:
  register <name> <email> <password>
  login <email> <password>
  logout
  whoami
  products
  supermarkets
  add-product <name> <originalPrice> <discountPrice> <percentage> <supermarketId>
  add-supermarket <name> <latitude> <longitude>
`

func main() {
	var (
		serverURL string
		storePath string
	)
	flag.StringVar(&serverURL, "server", "http://localhost:4000/graphql", "GraphQL endpoint")
	flag.StringVar(&storePath, "store", defaultStorePath(), "local store file")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Print(usage)
		os.Exit(2)
	}

	store := kv.Open(storePath)
	manager := session.NewManager(store, nil, nil)

	client := transport.New(serverURL, manager, func() {
		manager.Clear()
	})
	authAPI := repository.NewAuthAPI(client)
	manager.SetProfileFetcher(authAPI.Me)

	ctx := context.Background()
	manager.Start(ctx)
	defer manager.Stop()

	products := repository.NewFallbackProducts(manager,
		repository.NewRemoteProducts(client), repository.NewLocalProducts(store))
	supermarkets := repository.NewFallbackSupermarkets(manager,
		repository.NewRemoteSupermarkets(client), repository.NewLocalSupermarkets(store))

	if err := run(ctx, args, manager, authAPI, products, supermarkets); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	args []string,
	manager *session.Manager,
	authAPI *repository.AuthAPI,
	products *repository.FallbackProducts,
	supermarkets *repository.FallbackSupermarkets,
) error {
	switch args[0] {
	case "register":
		if len(args) != 4 {
			return fmt.Errorf("usage: register <name> <email> <password>")
		}
		payload, err := authAPI.Register(ctx, args[1], args[2], args[3])
		if err != nil {
			return err
		}
		if err := manager.SetSession(payload.Token, &payload.User); err != nil {
			return err
		}
		fmt.Println("registered as", payload.User.Email)

	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		payload, err := authAPI.Login(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		if err := manager.SetSession(payload.Token, &payload.User); err != nil {
			return err
		}
		fmt.Println("logged in as", payload.User.Email)

	case "logout":
		manager.Clear()
		fmt.Println("logged out")

	case "whoami":
		if user := manager.User(); user != nil {
			printJSON(user)
		} else {
			fmt.Println("not authenticated (state:", manager.State().String()+")")
		}

	case "products":
		list, err := products.List(ctx)
		if err != nil {
			return err
		}
		printJSON(list)

	case "supermarkets":
		list, err := supermarkets.List(ctx)
		if err != nil {
			return err
		}
		printJSON(list)

	case "add-product":
		if len(args) != 6 {
			return fmt.Errorf("usage: add-product <name> <originalPrice> <discountPrice> <percentage> <supermarketId>")
		}
		original, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid original price: %w", err)
		}
		discount, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("invalid discount price: %w", err)
		}
		pct, err := strconv.Atoi(args[4])
		if err != nil {
			return fmt.Errorf("invalid percentage: %w", err)
		}
		created, err := products.Create(ctx, repository.Product{
			Name:               args[1],
			OriginalPrice:      original,
			DiscountPrice:      discount,
			DiscountPercentage: pct,
			SupermarketID:      args[5],
		})
		if err != nil {
			return err
		}
		printJSON(created)

	case "add-supermarket":
		if len(args) != 4 {
			return fmt.Errorf("usage: add-supermarket <name> <latitude> <longitude>")
		}
		lat, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid latitude: %w", err)
		}
		lng, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("invalid longitude: %w", err)
		}
		created, err := supermarkets.Create(ctx, repository.Supermarket{
			Name:      args[1],
			Latitude:  lat,
			Longitude: lng,
		})
		if err != nil {
			return err
		}
		printJSON(created)

	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ondetem.json"
	}
	return filepath.Join(home, ".ondetem.json")
}
