package api

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/viper"

	"github.com/citypulse/citypoints-api/category"
	"github.com/citypulse/citypoints-api/fraud"
	"github.com/citypulse/citypoints-api/projection"
	"github.com/citypulse/citypoints-api/schema"
	"github.com/citypulse/citypoints-api/utils"
)

const (
	createAwardPoints = 10
	enrichAwardPoints = 5
)

func (s *Server) createSubmission(c *gin.Context) {
	requester := c.GetString("requester")
	isAdmin := c.GetBool("isAdmin")

	var params schema.SubmissionPayload
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if !params.Category.Valid() {
		abortWithEncoding(c, http.StatusBadRequest, errorUnknownCategory)
		return
	}

	eventType := params.EventType
	if eventType == "" {
		eventType = schema.EventTypeCreate
	}
	if eventType != schema.EventTypeCreate && eventType != schema.EventTypeEnrich {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	image, ok := s.decodeImage(c, params.ImageBase64)
	if !ok {
		return
	}
	secondImage, ok := s.decodeImage(c, params.SecondImageBase64)
	if !ok {
		return
	}

	primaryMeta := fraud.ExtractPhotoMetadata(image)
	secondaryMeta := fraud.ExtractPhotoMetadata(secondImage)

	// IP-derived location is best effort; lookup failures degrade to
	// "unavailable" rather than blocking the submission
	var ipLocation *schema.Location
	if loc, err := s.ipGeoClient.Lookup(c.ClientIP()); err == nil {
		ipLocation = loc
	} else {
		log.WithError(err).Warn("ip location unavailable")
	}

	thresholds := fraud.Thresholds{
		SubmissionKm: viper.GetFloat64("fraud.submission_threshold_km"),
		IPKm:         viper.GetFloat64("fraud.ip_threshold_km"),
	}

	effective, err := fraud.ResolveEffectiveLocation(primaryMeta.GPS, params.Location, ipLocation, isAdmin, thresholds)
	if err != nil {
		s.abortWithFraudError(c, err)
		return
	}

	details, supplied, err := category.NormalizeDetails(params.Category, params.Details)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorUnknownCategory, err)
		return
	}

	pointID := params.PointID
	switch eventType {
	case schema.EventTypeCreate:
		if missing := category.ListCreateMissingFields(params.Category, details); len(missing) > 0 {
			abortWithEncoding(c, http.StatusBadRequest, errorMissingRequiredFields.withFields(missing))
			return
		}
		if pointID == "" {
			pointID = uuid.New().String()
		}

	case schema.EventTypeEnrich:
		if pointID == "" {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		events, err := s.store.GetPointEventsByPointID(pointID)
		if err != nil {
			abortWithEncoding(c, http.StatusServiceUnavailable, errorTemporarilyUnavailable, err)
			return
		}
		point := projection.ProjectPointByID(events, pointID)
		if point == nil {
			abortWithEncoding(c, http.StatusNotFound, errorPointNotFound)
			return
		}
		if eligible := category.EligibleEnrichFields(params.Category, supplied, point.Gaps); len(eligible) == 0 {
			abortWithEncoding(c, http.StatusBadRequest, errorNothingToEnrich)
			return
		}
	}

	var photoURL string
	if len(image) > 0 {
		key, err := s.photos.Save(image)
		if err != nil {
			abortWithEncoding(c, http.StatusServiceUnavailable, errorTemporarilyUnavailable, err)
			return
		}
		photoURL = key
	}

	primary := fraud.BuildPhotoFraudMetadata(primaryMeta, params.Location, ipLocation, thresholds.SubmissionKm, thresholds.IPKm)
	secondary := fraud.BuildPhotoFraudMetadata(secondaryMeta, params.Location, ipLocation, thresholds.SubmissionKm, thresholds.IPKm)
	details.FraudCheck = fraud.BuildSubmissionFraudCheck(primary, secondary, params.Location, ipLocation, effective, thresholds.SubmissionKm, thresholds.IPKm)

	location := *effective
	if eventType == schema.EventTypeCreate && s.geoInfoClient != nil {
		// address annotation is convenience data, never a reason to fail
		if annotated, err := s.geoInfoClient.PoliticalInfo(location); err == nil {
			location = annotated
		}
	}

	event := schema.PointEvent{
		ID:             uuid.New().String(),
		PointID:        pointID,
		EventType:      eventType,
		UserID:         requester,
		Category:       params.Category,
		Location:       location,
		Details:        details,
		PhotoURL:       photoURL,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
		CreatedAt:      time.Now().UTC(),
	}

	stored, err := s.store.InsertPointEvent(event)
	if err != nil {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorTemporarilyUnavailable, err)
		return
	}

	award := createAwardPoints
	if eventType == schema.EventTypeEnrich {
		award = enrichAwardPoints
	}
	if _, err := s.store.UpsertUserProfile(requester, award); err != nil {
		// the event is already appended; losing one XP update is accepted
		log.WithError(err).Error("fail to update user profile")
	}

	c.JSON(http.StatusCreated, stored)
}

func (s *Server) listSubmissions(c *gin.Context) {
	switch c.Query("view") {
	case "", "points":
		s.listProjectedPoints(c)
	case "events":
		s.listEvents(c)
	case "admin_events":
		s.listAdminEvents(c)
	default:
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
	}
}

func (s *Server) listProjectedPoints(c *gin.Context) {
	events, err := s.store.GetPointEvents()
	if err != nil {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorTemporarilyUnavailable, err)
		return
	}

	// legacy rows ride along; a backfill outage only narrows the view
	legacy, err := s.store.GetLegacySubmissions()
	if err != nil {
		log.WithError(err).Warn("legacy submissions unavailable")
	}

	points := projection.ProjectPoints(projection.MergeLegacy(legacy, events))
	points = filterByScope(points, c.Query("scope"))

	if filtered, ok := filterByRadius(points, c.Query("lat"), c.Query("lng"), c.Query("radius")); ok {
		points = filtered
	}

	c.JSON(http.StatusOK, gin.H{"points": points})
}

func (s *Server) listEvents(c *gin.Context) {
	requester := c.GetString("requester")
	isAdmin := c.GetBool("isAdmin")

	var (
		events []schema.PointEvent
		err    error
	)
	if isAdmin {
		events, err = s.store.GetPointEvents()
	} else {
		events, err = s.store.GetUserPointEvents(requester)
	}
	if err != nil {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorTemporarilyUnavailable, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (s *Server) listAdminEvents(c *gin.Context) {
	if !c.GetBool("isAdmin") {
		abortWithEncoding(c, http.StatusForbidden, errorAdminOnly)
		return
	}

	events, err := s.store.GetPointEvents()
	if err != nil {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorTemporarilyUnavailable, err)
		return
	}

	s.enrichForensics(events)

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// enrichForensics backfills fraud metadata for events stored before the
// fraud engine existed, re-reading EXIF from the archived photo. The
// number of photo fetches per request is capped.
func (s *Server) enrichForensics(events []schema.PointEvent) {
	lookupCap := viper.GetInt("forensics.lookup_cap")
	lookups := 0

	for i := range events {
		if lookups >= lookupCap {
			break
		}
		if events[i].Details.FraudCheck != nil || events[i].PhotoURL == "" {
			continue
		}

		lookups++
		data, err := s.photos.Fetch(events[i].PhotoURL)
		if err != nil {
			log.WithError(err).WithField("event", events[i].ID).Warn("forensic photo fetch failed")
			continue
		}

		meta := fraud.ExtractPhotoMetadata(data)
		subLoc := events[i].Location
		events[i].Details.FraudCheck = fraud.BuildSubmissionFraudCheck(
			fraud.BuildPhotoFraudMetadata(meta, &subLoc, nil,
				viper.GetFloat64("fraud.submission_threshold_km"),
				viper.GetFloat64("fraud.ip_threshold_km")),
			nil, &subLoc, nil, &subLoc,
			viper.GetFloat64("fraud.submission_threshold_km"),
			viper.GetFloat64("fraud.ip_threshold_km"),
		)
	}
}

func (s *Server) decodeImage(c *gin.Context, encoded string) ([]byte, bool) {
	if encoded == "" {
		return nil, true
	}

	maxSize := viper.GetInt("submission.max_image_size")

	// reject oversized payloads before decoding; base64 inflates by 4/3
	if len(encoded) > maxSize*4/3+4 {
		abortWithEncoding(c, http.StatusBadRequest, s.localized(c, errorImageTooLarge, "submission_image_too_large"))
		return nil, false
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return nil, false
	}
	if len(data) > maxSize {
		abortWithEncoding(c, http.StatusBadRequest, s.localized(c, errorImageTooLarge, "submission_image_too_large"))
		return nil, false
	}
	return data, true
}

func (s *Server) abortWithFraudError(c *gin.Context, err error) {
	switch err {
	case fraud.ErrNoLocationSignal:
		abortWithEncoding(c, http.StatusBadRequest, s.localized(c, errorNoLocationSignal, "fraud_no_location"), err)
	case fraud.ErrPhotoDeviceMismatch:
		abortWithEncoding(c, http.StatusBadRequest, s.localized(c, errorPhotoLocationMismatch, "fraud_photo_mismatch"), err)
	case fraud.ErrPhotoIPMismatch:
		abortWithEncoding(c, http.StatusBadRequest, s.localized(c, errorPhotoIPMismatch, "fraud_ip_mismatch"), err)
	case fraud.ErrOutsideCoverage:
		abortWithEncoding(c, http.StatusForbidden, s.localized(c, errorOutsideCoverage, "fraud_outside_coverage"), err)
	default:
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
	}
}

func (s *Server) localized(c *gin.Context, resp ErrorResponse, messageID string) ErrorResponse {
	localizer := utils.NewLocalizer(c.GetHeader("Accept-Language"))
	guidance, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return resp
	}
	return resp.withGuidance(guidance)
}

func filterByScope(points []schema.ProjectedPoint, scope string) []schema.ProjectedPoint {
	var bound fraud.Bound
	switch scope {
	case "bonamoussadi":
		bound = fraud.BonamoussadiBound
	case "cameroon":
		bound = fraud.CameroonBound
	default:
		return points
	}

	filtered := []schema.ProjectedPoint{}
	for _, p := range points {
		if bound.Contains(p.Location) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func filterByRadius(points []schema.ProjectedPoint, latParam, lngParam, radiusParam string) ([]schema.ProjectedPoint, bool) {
	lat, errLat := strconv.ParseFloat(latParam, 64)
	lng, errLng := strconv.ParseFloat(lngParam, 64)
	radiusKm, errRadius := strconv.ParseFloat(radiusParam, 64)
	if errLat != nil || errLng != nil || errRadius != nil {
		return nil, false
	}

	center := schema.Location{Latitude: lat, Longitude: lng}
	filtered := []schema.ProjectedPoint{}
	for _, p := range points {
		if fraud.HaversineKm(center, p.Location) <= radiusKm {
			filtered = append(filtered, p)
		}
	}
	return filtered, true
}
