package models

// ConfigurationID is the fixed primary key of the single configuration row.
const ConfigurationID uint = 1

// Configuration holds the WhatsApp API settings used to deliver blesses.
// It corresponds to the 'Configuration' table, which holds at most one row.
type Configuration struct {
	ConfigID               uint   `gorm:"column:ConfigId;primaryKey;autoIncrement:false" json:"ConfigId"`
	WhatsappAPIURL         string `gorm:"column:WhatsappApiUrl;not null" json:"WhatsappApiUrl"`
	WhatsappAPIToken       string `gorm:"column:WhatsappApiToken;not null" json:"WhatsappApiToken"`
	WhatsappAPISessionName string `gorm:"column:WhatsappApiSessionName;not null" json:"WhatsappApiSessionName"`
}

// TableName explicitly sets the table name for GORM.
func (Configuration) TableName() string {
	return "Configuration"
}

// ConfigurationPatch carries the fields of a partial configuration update;
// nil means not supplied.
type ConfigurationPatch struct {
	ConfigID               *uint   `json:"ConfigId"`
	WhatsappAPIURL         *string `json:"WhatsappApiUrl"`
	WhatsappAPIToken       *string `json:"WhatsappApiToken"`
	WhatsappAPISessionName *string `json:"WhatsappApiSessionName"`
}
