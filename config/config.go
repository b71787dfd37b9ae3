package config

type Config struct {
	DiscordAuth   DiscordAuth   `yaml:"discord_auth" validate:"required"`
	BattleMetrics BattleMetrics `yaml:"battlemetrics" validate:"required"`
	Channels      Channels      `yaml:"channels" validate:"required"`
	Meta          Meta          `yaml:"meta" validate:"required"`
}

type DiscordAuth struct {
	Token    string `yaml:"token" comment:"Discord bot token" validate:"required"`
	ClientID string `yaml:"client_id" comment:"Discord application (client) ID" validate:"required"`
	GuildID  string `yaml:"guild_id" comment:"Guild to register slash commands in, empty for global" default:""`
}

type BattleMetrics struct {
	Token string `yaml:"token" comment:"BattleMetrics API token" validate:"required"`

	APIUrl string `yaml:"api_url" default:"https://api.battlemetrics.com" comment:"BattleMetrics API base URL" validate:"required,httporhttps"`

	SiteUrl string `yaml:"site_url" default:"https://battlemetrics.com" comment:"BattleMetrics site URL used for ban links" validate:"required,httporhttps"`

	// Servers to export from, in the order they should be processed
	Servers []string `yaml:"servers" comment:"BattleMetrics server IDs to export bans from" validate:"required,min=1"`

	// Maps the short server numbers staff use in commands to real server IDs
	ServerAliases map[string]string `yaml:"server_aliases" comment:"Short server number -> BattleMetrics server ID"`

	// Maps ban list choice names (temp, cbl...) to ban list UUIDs
	BanLists map[string]string `yaml:"ban_lists" comment:"Ban list choice name -> BattleMetrics ban list ID"`

	TrackFile string `yaml:"track_file" default:"track.json" comment:"File the ban poller persists its last seen ban ID to" validate:"required"`
}

type Channels struct {
	BanExportForum string `yaml:"ban_export_forum" comment:"Forum channel ban review threads are created in" validate:"required"`
}

type Meta struct {
	Port     int    `yaml:"port" default:"3000" comment:"Port for the webhook listener" validate:"required"`
	Timezone string `yaml:"timezone" default:"Europe/London" comment:"Timezone ban timestamps are displayed in" validate:"required"`
}
