package booths

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadCatalog builds the catalog from the built-ins, optionally overlaid
// with a config file (BOOTHS_CONFIG_FILE or booths.yaml in the working
// directory) and BOOTH_* environment values. Missing files are not an error;
// malformed booth entries are.
func LoadCatalog() (*Catalog, error) {
	catalog := NewCatalog()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("booth")
	v.AutomaticEnv()

	v.SetConfigName("booths")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return catalog, nil
		}
		return nil, fmt.Errorf("failed to read booth config: %w", err)
	}

	for id := range v.GetStringMap("booths") {
		booth, err := boothFromViper(v, id)
		if err != nil {
			return nil, err
		}
		if err := catalog.Register(booth); err != nil {
			return nil, err
		}
	}

	return catalog, nil
}

func boothFromViper(v *viper.Viper, id string) (Config, error) {
	prefix := "booths." + id + "."

	base, _ := NewCatalog().Lookup(id)
	booth := base
	if base.ID != id {
		booth = Config{ID: id}
	}

	if name := v.GetString(prefix + "name"); name != "" {
		booth.Name = name
	}
	if agentID := v.GetString(prefix + "agent_id"); agentID != "" {
		booth.AgentID = agentID
	}
	if logo := v.GetString(prefix + "logo"); logo != "" {
		booth.Logo = logo
	}

	if idle := v.GetStringSlice(prefix + "videos.idle"); len(idle) > 0 {
		booth.Videos.Idle = idle
	}
	if talking := v.GetString(prefix + "videos.talking"); talking != "" {
		booth.Videos.Talking = talking
	}
	if thinking := v.GetString(prefix + "videos.thinking"); thinking != "" {
		booth.Videos.Thinking = thinking
	}
	if preview := v.GetStringSlice(prefix + "videos.preview"); len(preview) > 0 {
		booth.Videos.Preview = preview
	}
	if tools := v.GetStringMapString(prefix + "videos.tools"); len(tools) > 0 {
		if booth.Videos.Tools == nil {
			booth.Videos.Tools = map[string]string{}
		}
		for name, url := range tools {
			booth.Videos.Tools[name] = url
		}
	}

	if v.IsSet(prefix + "capabilities.request_phone_number") {
		booth.Capabilities.RequestPhoneNumber = v.GetBool(prefix + "capabilities.request_phone_number")
	}
	if v.IsSet(prefix + "capabilities.show_report") {
		booth.Capabilities.ShowReport = v.GetBool(prefix + "capabilities.show_report")
	}
	if v.IsSet(prefix + "capabilities.create_report") {
		booth.Capabilities.CreateReport = v.GetBool(prefix + "capabilities.create_report")
	}

	if err := booth.Videos.Validate(); err != nil {
		return Config{}, fmt.Errorf("booth %q: %w", id, err)
	}
	return booth, nil
}
