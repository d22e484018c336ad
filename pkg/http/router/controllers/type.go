package controllers

type envelope map[string]any
