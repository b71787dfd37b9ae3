package state

import (
	"context"
	"os"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-playground/validator/v10"
	"github.com/infinitybotlist/eureka/genconfig"
	"github.com/infinitybotlist/eureka/snippets"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"banexport/bm"
	"banexport/config"
	"banexport/review"
)

var (
	Discord   *discordgo.Session
	Logger    *zap.Logger
	BM        *bm.Client
	Registry  *review.Registry
	Location  *time.Location
	Context   = context.Background()
	Validator = validator.New()

	Config *config.Config
)

func Setup() {
	Validator.RegisterValidation("httporhttps", snippets.ValidatorIsHttpOrHttps)

	genconfig.GenConfig(config.Config{})

	cfg, err := os.ReadFile("config.yaml")

	if err != nil {
		panic(err)
	}

	err = yaml.Unmarshal(cfg, &Config)

	if err != nil {
		panic(err)
	}

	err = Validator.Struct(Config)

	if err != nil {
		panic("configError: " + err.Error())
	}

	Logger = snippets.CreateZap()

	Location, err = time.LoadLocation(Config.Meta.Timezone)

	if err != nil {
		panic(err)
	}

	BM = bm.New(Config.BattleMetrics.APIUrl, Config.BattleMetrics.Token, Logger.Named("bm"))

	Registry = review.NewRegistry(Logger.Named("review"))

	Discord, err = discordgo.New("Bot " + Config.DiscordAuth.Token)

	if err != nil {
		panic(err)
	}

	Discord.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
}
