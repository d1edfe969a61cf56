package shared

type Config struct {
	Environment *bool     `yaml:"environment"`
	Port        *string   `yaml:"port" validate:"required"`
	PublicURL   *string   `yaml:"public_url" validate:"required,url"`
	Timezone    *string   `yaml:"timezone"`
	Cors        []*string `yaml:"cors"`

	Storage   StorageConfig   `yaml:"storage"`
	Templates TemplatesConfig `yaml:"templates"`
	Upload    UploadConfig    `yaml:"upload"`
	Render    RenderConfig    `yaml:"render"`
	Mail      MailConfig      `yaml:"mail"`
	Auth      AuthConfig      `yaml:"auth"`
}

type StorageConfig struct {
	Driver         *string `yaml:"driver" validate:"omitempty,oneof=local minio"`
	DataDir        *string `yaml:"data_dir"`
	MinIoEndpoint  *string `yaml:"minio_endpoint"`
	MinIoAccessKey *string `yaml:"minio_access_key"`
	MinIoSecretKey *string `yaml:"minio_secret_key"`
	MinIoSecure    *bool   `yaml:"minio_secure"`
	MinIoBucket    *string `yaml:"minio_bucket"`
}

type TemplatesConfig struct {
	Dir *string `yaml:"dir"`
}

type UploadConfig struct {
	Dir     *string `yaml:"dir"`
	MaxRows *int    `yaml:"max_rows" validate:"omitempty,gt=0"`
}

type RenderConfig struct {
	Engine     *string `yaml:"engine" validate:"omitempty,oneof=browser native"`
	Timeout    *string `yaml:"timeout"`
	ChromePath *string `yaml:"chrome_path"`

	SigningCertPath *string `yaml:"signing_cert_path"`
	SigningKeyPath  *string `yaml:"signing_key_path"`
}

type MailConfig struct {
	Host      *string `yaml:"host"`
	Port      *int    `yaml:"port" validate:"omitempty,gt=0,lte=65535"`
	User      *string `yaml:"user"`
	Pass      *string `yaml:"pass"`
	From      *string `yaml:"from"`
	AttachPDF *bool   `yaml:"attach_pdf"`
}

type AuthConfig struct {
	JWTSecret         *string `yaml:"jwt_secret"`
	AdminPasswordHash *string `yaml:"admin_password_hash"`
}

// MailSettings is the resolved SMTP configuration for one bulk send.
type MailSettings struct {
	Host string
	Port int
	User string
	Pass string
	From string
}
