package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dgrijalva/jwt-go"
	"github.com/getsentry/sentry-go"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/citypulse/citypoints-api/api"
	"github.com/citypulse/citypoints-api/external/geoinfo"
	"github.com/citypulse/citypoints-api/external/ipgeo"
	"github.com/citypulse/citypoints-api/photostore"
	"github.com/citypulse/citypoints-api/schema"
	"github.com/citypulse/citypoints-api/store"
	"github.com/citypulse/citypoints-api/utils"
)

var (
	server *api.Server
	ormDB  *gorm.DB
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("citypoints")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("fraud.submission_threshold_km", 1)
	viper.SetDefault("fraud.ip_threshold_km", 50)
	viper.SetDefault("submission.max_image_size", 8<<20)
	viper.SetDefault("external.fetch_timeout_ms", 3500)
	viper.SetDefault("forensics.lookup_cap", 25)
	viper.SetDefault("i18n.dir", "./i18n")
	viper.SetDefault("photostore.dir", "./photos")
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if ormDB != nil {
			log.Info("Shutting down db store")
			if err := ormDB.Close(); err != nil {
				log.Error(err)
			}
		}

		os.Exit(1)
	}()

	var ensureIndexes bool

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.BoolVar(&ensureIndexes, "i", false, "[optional] ensure mongodb indexes before serving")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	utils.InitI18NBundle()
	log.WithField("prefix", "init").Info("Loaded i18n bundle")

	// Load JWT private key
	jwtSecretByte, err := ioutil.ReadFile(viper.GetString("jwt.keyfile"))
	if err != nil {
		log.Panic(err)
	}
	jwtPrivateKey, err := jwt.ParseRSAPrivateKeyFromPEMWithPassword(jwtSecretByte, viper.GetString("jwt.password"))
	if err != nil {
		log.Panic(err)
	}
	log.WithField("prefix", "init").Info("Loaded global jwt key")

	if ensureIndexes {
		indexer := schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database"))
		if err := indexer.IndexAll(); err != nil {
			log.Panic(err)
		}
		log.WithField("prefix", "init").Info("Ensured mongodb indexes")
	}

	ormDB, err = gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		log.Panic(err)
	}

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}

	err = mongoClient.Connect(context.Background())
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}

	mongoStore := store.NewMongoStore(mongoClient, viper.GetString("mongo.database"))
	cityStore := store.NewCityPointsStore(ormDB, mongoStore)

	photos, err := photostore.NewLocalPhotoStore(viper.GetString("photostore.dir"))
	if err != nil {
		log.Panic(err)
	}

	ipGeoClient := ipgeo.New(time.Duration(viper.GetInt("external.fetch_timeout_ms")) * time.Millisecond)

	var geoInfoClient geoinfo.GeoInfo
	if apiKey := viper.GetString("map.key"); apiKey != "" {
		geoInfoClient, err = geoinfo.New(apiKey)
		if err != nil {
			log.Error(err)
		}
	}

	// Init http server
	server = api.NewServer(
		cityStore,
		photos,
		ipGeoClient,
		geoInfoClient,
		jwtPrivateKey)
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	err = server.Run(":" + viper.GetString("server.port"))
	if cerr := ormDB.Close(); cerr != nil {
		log.Error(cerr)
	}
	log.Fatal(err)
}
