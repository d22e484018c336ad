package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/evacx/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/evacx/pkg/http/usecases"
	"go.uber.org/zap"
)

const defaultPageLimit = 100

type resultsAPI struct {
	resultsService ResultsService
	validate       *validator.Validate
	trans          ut.Translator
	log            *zap.Logger
}

func New(resultsService ResultsService, log *zap.Logger) *resultsAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	return &resultsAPI{
		resultsService: resultsService,
		validate:       validate,
		trans:          trans,
		log:            log,
	}
}

func (api *resultsAPI) Routes(group *helper.RouteGroup) {
	group.GET("/routes", api.listRoutes)
	group.GET("/routes/:building_id", api.routeOfBuilding)
	group.GET("/summary", api.summary)
	group.GET("/nearestNode", api.nearestNode)
}

// validateRequest. writes a 400 and returns false when request breaks its validate tags
func (api *resultsAPI) validateRequest(w http.ResponseWriter, r *http.Request, request any) bool {
	if err := api.validate.Struct(request); err != nil {
		vv := translateError(err, api.trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return false
	}
	return true
}

func (api *resultsAPI) routeOfBuilding(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request routeOfBuildingRequest
		err     error
	)
	request.BuildingID, err = strconv.ParseInt(p.ByName("building_id"), 10, 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("building_id must be a valid int"))
		return
	}
	if !api.validateRequest(w, r, request) {
		return
	}

	route, err := api.resultsService.RouteOfBuilding(request.BuildingID)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteResponse(route)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *resultsAPI) listRoutes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request listRoutesRequest
		err     error
	)
	query := r.URL.Query()

	request.Found = query.Get("found")
	request.Walk = query.Get("walk")
	request.Limit = defaultPageLimit
	if s := query.Get("offset"); s != "" {
		request.Offset, err = strconv.Atoi(s)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("offset must be a valid int"))
			return
		}
	}
	if s := query.Get("limit"); s != "" {
		request.Limit, err = strconv.Atoi(s)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("limit must be a valid int"))
			return
		}
	}
	if !api.validateRequest(w, r, request) {
		return
	}

	filter := usecases.RouteFilter{
		Found:      optionalBool(request.Found),
		WalkLocked: optionalBool(request.Walk),
		Offset:     request.Offset,
		Limit:      request.Limit,
	}
	routes, total, err := api.resultsService.ListRoutes(filter)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	resp := listRoutesResponse{
		Routes: NewRoutesResponse(routes),
		Total:  total,
		Offset: request.Offset,
		Limit:  request.Limit,
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *resultsAPI) summary(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	summary := api.resultsService.Summary()
	data := envelope{
		"summary":           summary,
		"walk_locked_share": summary.WalkLockedShare(),
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": data}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *resultsAPI) nearestNode(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearestNodeRequest
		err     error
	)
	query := r.URL.Query()

	request.X, err = strconv.ParseFloat(query.Get("x"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("x is required and must be a valid float"))
		return
	}
	request.Y, err = strconv.ParseFloat(query.Get("y"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("y is required and must be a valid float"))
		return
	}
	if !api.validateRequest(w, r, request) {
		return
	}

	node, err := api.resultsService.NearestNode(request.X, request.Y)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewNearestNodeResponse(node)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func optionalBool(s string) *bool {
	if s == "" {
		return nil
	}
	b := s == "true"
	return &b
}
